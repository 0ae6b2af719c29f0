package logcapture

import (
	"fmt"

	"github.com/modoterra/headless/pkg/core"
	"github.com/modoterra/headless/pkg/queue"
)

// Sink receives every message the Handler captures. Implementations must
// be safe for concurrent use: Record is called from whichever goroutine
// logged.
type Sink interface {
	Record(msg core.LogMessage)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(msg core.LogMessage)

func (f SinkFunc) Record(msg core.LogMessage) { f(msg) }

// QueueSink pushes messages onto the captured-log queue that the frame loop
// drains.
type QueueSink struct {
	queue *queue.Queue[core.LogMessage]
}

// NewQueueSink creates a sink feeding q.
func NewQueueSink(q *queue.Queue[core.LogMessage]) QueueSink {
	return QueueSink{queue: q}
}

// Record queues msg. The consumer end must outlive every logger, so a
// closed queue is an invariant violation and panics rather than dropping
// the message.
func (s QueueSink) Record(msg core.LogMessage) {
	if err := s.queue.Push(msg); err != nil {
		panic(fmt.Sprintf("logcapture: captured log queue no longer exists: %v", err))
	}
}

// Tee returns a sink that records each message to every sink in order.
func Tee(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return tee(sinks)
}

type tee []Sink

func (t tee) Record(msg core.LogMessage) {
	for _, s := range t {
		s.Record(msg)
	}
}
