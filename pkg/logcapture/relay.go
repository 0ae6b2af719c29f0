package logcapture

import (
	"github.com/modoterra/headless/pkg/app"
	"github.com/modoterra/headless/pkg/core"
	"github.com/modoterra/headless/pkg/queue"
)

// LogEvent carries one captured message through the frame's event stream.
type LogEvent struct {
	Message core.LogMessage
}

// CapturedLogEvents is the consumer end of the captured-log queue. Messages
// wait here until TransferLogEvents moves them into Events[LogEvent].
type CapturedLogEvents struct {
	queue *queue.Queue[core.LogMessage]
}

// TransferLogEvents drains every queued message without blocking and sends
// them, in arrival order, as LogEvents.
func TransferLogEvents(w *app.World) {
	captured := app.MustGet[CapturedLogEvents](w)
	msgs := captured.queue.Drain()
	if len(msgs) == 0 {
		return
	}
	events := app.MustGet[app.Events[LogEvent]](w)
	for _, msg := range msgs {
		events.Send(LogEvent{Message: msg})
	}
}

// ConsumeLogEvents returns a system that appends this frame's LogEvents to
// the Store.
func ConsumeLogEvents() app.System {
	return (&logConsumer{}).consume
}

// logConsumer appends LogEvents to the Store, remembering which it has
// already read.
type logConsumer struct {
	reader app.EventReader[LogEvent]
}

func (c *logConsumer) consume(w *app.World) {
	store := app.MustGet[Store](w)
	for _, e := range c.reader.Read(app.MustGet[app.Events[LogEvent]](w)) {
		store.Add(e.Message)
	}
}

// Flush moves every queued message into the Store now, outside the frame
// schedule. Call it after App.Run returns to keep what was logged during
// the last frame and by shutdown hooks. Messages are never added twice.
func Flush(w *app.World) {
	TransferLogEvents(w)
	app.MustGet[logConsumer](w).consume(w)
}
