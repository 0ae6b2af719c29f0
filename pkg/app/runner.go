package app

import (
	"context"
	"time"
)

// RunMode selects how ScheduleRunnerPlugin drives frames.
type RunMode int

const (
	// ModeOnce runs a single frame and returns.
	ModeOnce RunMode = iota
	// ModeLoop runs a frame every Wait until AppExit or cancellation.
	ModeLoop
)

// ScheduleRunnerPlugin installs a runner that does not depend on any
// window or event loop.
type ScheduleRunnerPlugin struct {
	Mode RunMode
	Wait time.Duration
}

// RunOnce returns a runner plugin that runs exactly one frame.
func RunOnce() ScheduleRunnerPlugin {
	return ScheduleRunnerPlugin{Mode: ModeOnce}
}

// RunLoop returns a runner plugin that runs a frame every wait.
func RunLoop(wait time.Duration) ScheduleRunnerPlugin {
	return ScheduleRunnerPlugin{Mode: ModeLoop, Wait: wait}
}

func (p ScheduleRunnerPlugin) Build(a *App) {
	if p.Mode == ModeLoop {
		a.SetRunner(loopRunner(p.Wait))
		return
	}
	a.SetRunner(runOnce)
}

func runOnce(_ context.Context, a *App) error {
	a.Update()
	return nil
}

// loopRunner runs one frame immediately, then one per tick. It stops after
// a frame that sent AppExit, or when ctx is cancelled. A wait <= 0 runs
// frames back to back.
func loopRunner(wait time.Duration) Runner {
	return func(ctx context.Context, a *App) error {
		tick := backToBack
		if wait > 0 {
			ticker := time.NewTicker(wait)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			a.Update()
			if a.Exiting() {
				a.Logger().Debug("app exit requested")
				return nil
			}
			if ctx.Err() == nil {
				select {
				case <-ctx.Done():
				case <-tick:
					continue
				}
			}
			a.Logger().Debug("app run cancelled", "err", ctx.Err())
			return nil
		}
	}
}

var backToBack = func() <-chan time.Time {
	ch := make(chan time.Time)
	close(ch)
	return ch
}()
