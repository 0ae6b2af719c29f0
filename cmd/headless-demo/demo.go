package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/modoterra/headless/pkg/app"
	"github.com/modoterra/headless/pkg/config"
	"github.com/modoterra/headless/pkg/headless"
	"github.com/modoterra/headless/pkg/logcapture"
	"github.com/modoterra/headless/pkg/terminal"
	"github.com/modoterra/headless/pkg/widgets"
)

const (
	journalIdentifier = "headless-demo"
	workerInterval    = 250 * time.Millisecond
)

type demoOptions struct {
	frames     uint32
	noTerminal bool
	out        io.Writer
}

// runApp runs the demo until quit, cancellation or the frame limit. With
// no terminal the captured log is written to opts.out afterwards.
func runApp(ctx context.Context, cfg *config.Config, opts demoOptions) error {
	a := newApp(cfg, opts)
	err := a.Run(ctx)
	// Keep what the last frame and the shutdown hooks logged.
	logcapture.Flush(a.World())
	if err != nil {
		return err
	}
	if opts.noTerminal {
		store := app.MustGet[logcapture.Store](a.World())
		if store.Count() > 0 {
			fmt.Fprintln(opts.out, store.Get())
		}
	}
	return nil
}

func newApp(cfg *config.Config, opts demoOptions) *app.App {
	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	var sinks []logcapture.Sink
	journalMissing := false
	if cfg.Journal {
		if sink, ok := logcapture.NewJournalSink(journalIdentifier); ok {
			sinks = append(sinks, sink)
		} else {
			journalMissing = true
		}
	}

	a := app.New()
	a.AddPlugins(headless.HeadlessPlugins(headless.Options{
		LogFilter:        cfg.Log,
		LogSinks:         sinks,
		SetDefaultLogger: true,
		DisableTerminal:  opts.noTerminal,
		TerminalOptions:  []terminal.Option{terminal.WithAltScreen(cfg.AltScreen)},
		NotifySystemd:    cfg.NotifySystemd,
	}).Set(app.RunLoop(cfg.FrameInterval())))

	if journalMissing {
		a.Logger().Warn("journald is not reachable, journal output disabled")
	}

	a.AddSystems(app.Startup, startWorkers(cfg.Workers), logStartup(cfg))
	a.AddSystems(app.Update, renderLogs(cfg.Title))
	if opts.frames > 0 {
		a.AddSystems(app.Last, exitAfter(opts.frames))
	}
	return a
}

func logStartup(cfg *config.Config) app.System {
	return func(w *app.World) {
		w.Logger().Info("demo started", "frame_rate", cfg.FrameRate, "workers", cfg.Workers, "log", cfg.Log)
	}
}

// startWorkers spawns n background producers on the task pool. Each logs a
// tick every workerInterval until the pool shuts down.
func startWorkers(n int) app.System {
	return func(w *app.World) {
		pool := app.MustGet[app.TaskPool](w)
		for i := range n {
			logger := w.Logger().With("component", "worker", "worker", i)
			pool.Spawn(func(ctx context.Context) error {
				return produce(ctx, logger)
			})
		}
	}
}

func produce(ctx context.Context, logger *slog.Logger) error {
	ticker := time.NewTicker(workerInterval)
	defer ticker.Stop()

	for tick := 1; ; tick++ {
		select {
		case <-ctx.Done():
			logger.Debug("worker stopping")
			return ctx.Err()
		case <-ticker.C:
			logger.Info("tick", "n", tick)
		}
	}
}

// renderLogs draws the captured log every frame. A terminal that closed on
// its own ends the app.
func renderLogs(title string) app.System {
	return func(w *app.World) {
		store := app.MustGet[logcapture.Store](w)
		term := app.MustGet[headless.TerminalResource](w)

		panel := widgets.LogPanel{
			Title: fmt.Sprintf("%s (%d)", title, store.Count()),
			Text:  store.Get(),
		}
		err := term.Draw(func(f *terminal.Frame) {
			f.Render(panel.View(f.Size()))
		})
		switch {
		case errors.Is(err, terminal.ErrClosed):
			w.Logger().Warn("terminal closed, exiting")
			app.MustGet[app.Events[app.AppExit]](w).Send(app.AppExit{})
		case err != nil:
			w.Logger().Error("failed to draw", "err", err)
		}
	}
}

func exitAfter(limit uint32) app.System {
	return func(w *app.World) {
		if app.MustGet[app.FrameCount](w).Get() >= limit {
			w.Logger().Debug("frame limit reached", "frames", limit)
			app.MustGet[app.Events[app.AppExit]](w).Send(app.AppExit{})
		}
	}
}
