package app

// Events is a double-buffered event queue. Events sent during a frame stay
// readable through the following frame, so a reader scheduled earlier in
// the frame than the writer still sees every event once.
type Events[T any] struct {
	buf        []eventInstance[T]
	next       uint64
	frameStart uint64
}

type eventInstance[T any] struct {
	id    uint64
	event T
}

// Send queues one event.
func (e *Events[T]) Send(event T) {
	e.buf = append(e.buf, eventInstance[T]{id: e.next, event: event})
	e.next++
}

// SendBatch queues events in order.
func (e *Events[T]) SendBatch(events []T) {
	for _, ev := range events {
		e.Send(ev)
	}
}

// Len returns the number of buffered events.
func (e *Events[T]) Len() int {
	return len(e.buf)
}

// Update swaps the buffers: events sent before the previous Update are
// dropped. AddEvent schedules this once per frame.
func (e *Events[T]) Update() {
	keep := e.buf[:0]
	for _, inst := range e.buf {
		if inst.id >= e.frameStart {
			keep = append(keep, inst)
		}
	}
	clear(e.buf[len(keep):])
	e.buf = keep
	e.frameStart = e.next
}

// EventReader tracks which events of one Events queue it has consumed.
// Each system that reads events owns its reader.
type EventReader[T any] struct {
	last uint64
}

// Read returns the events sent since this reader's previous call, oldest
// first. Events dropped by Update before they were read are skipped.
func (r *EventReader[T]) Read(e *Events[T]) []T {
	var out []T
	for _, inst := range e.buf {
		if inst.id >= r.last {
			out = append(out, inst.event)
		}
	}
	r.last = e.next
	return out
}

// AddEvent registers Events[T] as a resource and schedules its buffer swap
// at the start of every frame. Registering the same type twice is a no-op.
func AddEvent[T any](a *App) {
	if _, ok := Get[Events[T]](a.world); ok {
		return
	}
	events := &Events[T]{}
	Insert(a.world, events)
	a.AddSystems(First, func(*World) { events.Update() })
}

// AppExit asks the runner to stop after the current frame.
type AppExit struct{}
