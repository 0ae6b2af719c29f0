package app

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// FrameCount counts completed frames. It wraps around on overflow.
type FrameCount struct {
	n uint32
}

// Get returns the number of frames completed so far.
func (f *FrameCount) Get() uint32 {
	return f.n
}

// FrameCountPlugin inserts FrameCount and increments it at the end of
// every frame.
type FrameCountPlugin struct{}

func (FrameCountPlugin) Build(a *App) {
	fc := &FrameCount{}
	Insert(a.world, fc)
	a.AddSystems(Last, func(*World) { fc.n++ })
}

// Time tracks frame timing. It is updated at the start of every frame.
type Time struct {
	now     func() time.Time
	startup time.Time
	last    time.Time
	delta   time.Duration
	elapsed time.Duration
}

// Startup returns when the Time resource was created.
func (t *Time) Startup() time.Time { return t.startup }

// Delta returns the time between the start of the previous frame and the
// start of this one. It is zero during the first frame.
func (t *Time) Delta() time.Duration { return t.delta }

// Elapsed returns the time since startup, as of the start of this frame.
func (t *Time) Elapsed() time.Duration { return t.elapsed }

func (t *Time) update() {
	now := t.now()
	if !t.last.IsZero() {
		t.delta = now.Sub(t.last)
	}
	t.last = now
	t.elapsed = now.Sub(t.startup)
}

// TimePlugin inserts Time. Now defaults to time.Now.
type TimePlugin struct {
	Now func() time.Time
}

func (p TimePlugin) Build(a *App) {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	t := &Time{now: now, startup: now()}
	Insert(a.world, t)
	a.AddSystems(First, func(*World) { t.update() })
}

// TaskPool runs background work off the frame goroutine. Tasks share a
// context that is cancelled when the app shuts down.
type TaskPool struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

// Context returns the context tasks should watch for shutdown.
func (p *TaskPool) Context() context.Context {
	return p.ctx
}

// Spawn runs fn on its own goroutine, waiting for a free slot if the pool
// is at its limit.
func (p *TaskPool) Spawn(fn func(ctx context.Context) error) {
	p.group.Go(func() error { return fn(p.ctx) })
}

// TrySpawn is like Spawn but reports false instead of waiting when the
// pool is full.
func (p *TaskPool) TrySpawn(fn func(ctx context.Context) error) bool {
	return p.group.TryGo(func() error { return fn(p.ctx) })
}

// Close cancels the tasks' context and waits for them to return. It
// returns the first error a task returned, other than context.Canceled.
func (p *TaskPool) Close() error {
	p.cancel()
	if err := p.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// TaskPoolPlugin inserts a TaskPool limited to Size concurrent tasks
// (unlimited when Size <= 0) and closes it at shutdown.
type TaskPoolPlugin struct {
	Size int
}

func (p TaskPoolPlugin) Build(a *App) {
	ctx, cancel := context.WithCancel(context.Background())
	group := &errgroup.Group{}
	if p.Size > 0 {
		group.SetLimit(p.Size)
	}
	pool := &TaskPool{ctx: ctx, cancel: cancel, group: group}
	Insert(a.world, pool)
	a.OnShutdown(func() {
		if err := pool.Close(); err != nil {
			a.Logger().Error("background task failed", "err", err)
		}
	})
}
