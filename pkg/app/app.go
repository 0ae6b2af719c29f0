package app

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// Schedule identifies when a system runs.
type Schedule string

const (
	// Startup runs once, before the first frame.
	Startup Schedule = "startup"

	First      Schedule = "first"
	PreUpdate  Schedule = "pre_update"
	Update     Schedule = "update"
	PostUpdate Schedule = "post_update"
	Last       Schedule = "last"
)

// frameSchedules is the order in which per-frame schedules run.
var frameSchedules = []Schedule{First, PreUpdate, Update, PostUpdate, Last}

// System is one step of a schedule. Systems run on the goroutine driving
// the app, one at a time, in registration order within their schedule.
type System func(w *World)

// Plugin configures an App: it inserts resources, registers events and
// adds systems.
type Plugin interface {
	Build(a *App)
}

// Runner drives the frame loop. It returns when the app should stop.
type Runner func(ctx context.Context, a *App) error

// App is the host simulation: a World plus the schedules that run against it.
type App struct {
	world      *World
	systems    map[Schedule][]System
	plugins    map[reflect.Type]bool
	runner     Runner
	shutdown   []func()
	started    bool
	exitReader EventReader[AppExit]
}

// New creates an App with the AppExit event registered and a runner that
// executes a single frame.
func New() *App {
	a := &App{
		world:   newWorld(),
		systems: make(map[Schedule][]System),
		plugins: make(map[reflect.Type]bool),
	}
	AddEvent[AppExit](a)
	return a
}

// World returns the app's world.
func (a *App) World() *World {
	return a.world
}

// Logger returns the host logger.
func (a *App) Logger() *slog.Logger {
	return a.world.logger
}

// SetLogger replaces the host logger.
func (a *App) SetLogger(logger *slog.Logger) {
	a.world.logger = logger
}

// AddSystems appends systems to a schedule.
func (a *App) AddSystems(schedule Schedule, systems ...System) *App {
	a.systems[schedule] = append(a.systems[schedule], systems...)
	return a
}

// AddPlugins builds each plugin against the app. Adding a plugin whose
// type was already added panics.
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		if _, isGroup := p.(*PluginGroup); !isGroup {
			t := reflect.TypeOf(p)
			if a.plugins[t] {
				panic(fmt.Sprintf("app: plugin %s was already added", t))
			}
			a.plugins[t] = true
		}
		p.Build(a)
	}
	return a
}

// SetRunner replaces the frame loop.
func (a *App) SetRunner(r Runner) {
	a.runner = r
}

// OnShutdown registers fn to run after the runner returns. Hooks run in
// reverse registration order.
func (a *App) OnShutdown(fn func()) {
	a.shutdown = append(a.shutdown, fn)
}

// Update runs one frame, running Startup first if it has not run yet.
func (a *App) Update() {
	if !a.started {
		a.started = true
		a.runSchedule(Startup)
	}
	for _, s := range frameSchedules {
		a.runSchedule(s)
	}
}

// Exiting reports whether AppExit was sent since the last call.
func (a *App) Exiting() bool {
	return len(a.exitReader.Read(MustGet[Events[AppExit]](a.world))) > 0
}

// Run hands control to the runner and blocks until it returns, then runs
// the shutdown hooks.
func (a *App) Run(ctx context.Context) error {
	defer a.runShutdown()

	runner := a.runner
	if runner == nil {
		runner = runOnce
	}
	return runner(ctx, a)
}

func (a *App) runSchedule(s Schedule) {
	for _, sys := range a.systems[s] {
		sys(a.world)
	}
}

func (a *App) runShutdown() {
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		a.shutdown[i]()
	}
	a.shutdown = nil
}

// PluginGroup bundles plugins that are usually added together. Individual
// members can be replaced with Set before the group is added to an app.
type PluginGroup struct {
	plugins []Plugin
}

// NewPluginGroup creates a group from plugins, in build order.
func NewPluginGroup(plugins ...Plugin) *PluginGroup {
	return &PluginGroup{plugins: plugins}
}

// Add appends a plugin to the group.
func (g *PluginGroup) Add(p Plugin) *PluginGroup {
	g.plugins = append(g.plugins, p)
	return g
}

// Set replaces the member with the same type as p. It panics if the group
// has no such member.
func (g *PluginGroup) Set(p Plugin) *PluginGroup {
	t := reflect.TypeOf(p)
	for i, existing := range g.plugins {
		if reflect.TypeOf(existing) == t {
			g.plugins[i] = p
			return g
		}
	}
	panic(fmt.Sprintf("app: plugin %s is not part of the group", t))
}

// Plugins returns the group's members in build order.
func (g *PluginGroup) Plugins() []Plugin {
	return append([]Plugin(nil), g.plugins...)
}

// Build adds every member to the app.
func (g *PluginGroup) Build(a *App) {
	a.AddPlugins(g.plugins...)
}
