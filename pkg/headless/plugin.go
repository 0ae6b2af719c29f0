package headless

import (
	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/modoterra/headless/pkg/app"
	"github.com/modoterra/headless/pkg/logcapture"
	"github.com/modoterra/headless/pkg/terminal"
)

// Options configure HeadlessPlugin.
type Options struct {
	// LogFilter is the capture filter directive, see logcapture.ParseFilter.
	LogFilter string

	// LogSinks receive captured messages in addition to the log store.
	LogSinks []logcapture.Sink

	// SetDefaultLogger installs the capture logger as slog.Default.
	SetDefaultLogger bool

	// DisableTerminal runs without a screen, as if terminal setup failed.
	DisableTerminal bool

	// TerminalOptions are passed to terminal.Setup.
	TerminalOptions []terminal.Option

	// NotifySystemd sends READY=1 before the first frame and STOPPING=1
	// at shutdown.
	NotifySystemd bool

	// SetupTerminal replaces terminal.Setup, mainly for tests.
	SetupTerminal func(opts ...terminal.Option) (terminal.Terminal, error)
}

// HeadlessPlugin runs an app in the terminal: it captures logs, owns the
// terminal, and quits on q or ctrl+c.
type HeadlessPlugin struct {
	Options
}

func (p HeadlessPlugin) Build(a *app.App) {
	a.AddPlugins(logcapture.Plugin{
		Filter:     p.LogFilter,
		Sinks:      p.LogSinks,
		SetDefault: p.SetDefaultLogger,
	})

	app.Insert(a.World(), &ShouldQuit{result: Continue})
	a.AddSystems(app.PreUpdate, PollTerminalInput)
	a.AddSystems(app.PostUpdate, ExitSystem)

	term := p.setupTerminal(a)
	app.Insert(a.World(), &TerminalResource{Terminal: term})
	a.OnShutdown(func() {
		if err := term.Restore(); err != nil {
			a.Logger().Error("failed to restore terminal", "err", err)
		}
	})

	if p.NotifySystemd {
		n := notifier{notify: daemon.SdNotify, logger: a.Logger}
		a.AddSystems(app.Startup, func(*app.World) { n.ready() })
		a.OnShutdown(n.stopping)
	}
}

func (p HeadlessPlugin) setupTerminal(a *app.App) terminal.Terminal {
	if p.DisableTerminal {
		return terminal.Nop{}
	}
	setup := p.SetupTerminal
	if setup == nil {
		setup = func(opts ...terminal.Option) (terminal.Terminal, error) {
			return terminal.Setup(opts...)
		}
	}
	term, err := setup(p.TerminalOptions...)
	if err != nil {
		a.Logger().Error("failed to set up terminal", "err", err)
		return terminal.Nop{}
	}
	return term
}

// HeadlessPlugins is the plugin set for a headless terminal app: a task
// pool, frame counting, time, a schedule runner that runs one frame, and
// HeadlessPlugin. Swap the runner with Set(app.RunLoop(interval)).
func HeadlessPlugins(opts Options) *app.PluginGroup {
	return app.NewPluginGroup(
		app.TaskPoolPlugin{},
		app.FrameCountPlugin{},
		app.TimePlugin{},
		app.RunOnce(),
		HeadlessPlugin{Options: opts},
	)
}
