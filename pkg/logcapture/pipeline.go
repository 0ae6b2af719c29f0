package logcapture

import (
	"log/slog"

	"github.com/modoterra/headless/pkg/app"
	"github.com/modoterra/headless/pkg/core"
	"github.com/modoterra/headless/pkg/queue"
)

// Pipeline is the process's log capture: a queue, a handler feeding it and
// a logger built on the handler. Create one at startup and pass it, or its
// Logger, to whatever needs to log.
type Pipeline struct {
	queue   *queue.Queue[core.LogMessage]
	handler *Handler
	logger  *slog.Logger
}

// NewPipeline creates a pipeline. Captured messages go to the queue first,
// then to each of extra.
func NewPipeline(opts HandlerOptions, extra ...Sink) *Pipeline {
	q := queue.New[core.LogMessage]()
	sink := Tee(append([]Sink{NewQueueSink(q)}, extra...)...)
	h := NewHandler(sink, opts)
	return &Pipeline{
		queue:   q,
		handler: h,
		logger:  slog.New(h),
	}
}

// Logger returns a logger whose records are captured.
func (p *Pipeline) Logger() *slog.Logger {
	return p.logger
}

// Handler returns the capturing slog handler, for front-ends that build
// their own loggers.
func (p *Pipeline) Handler() *Handler {
	return p.handler
}

// Pending returns the number of captured messages not yet drained.
func (p *Pipeline) Pending() int {
	return p.queue.Len()
}

// Close drops the consumer end. Logging through the pipeline afterwards
// panics, so only call it once nothing will log again.
func (p *Pipeline) Close() {
	p.queue.Close()
}

// Plugin installs log capture into an app: the Pipeline, CapturedLogEvents,
// Events[LogEvent] and Store resources, the two per-frame relay steps, and
// the pipeline logger as the app's logger.
type Plugin struct {
	// Filter is a directive string, see ParseFilter.
	Filter string

	// Sinks receive captured messages in addition to the store.
	Sinks []Sink

	// SetDefault also installs the pipeline logger as slog.Default, so code
	// logging through the slog package functions is captured too.
	SetDefault bool

	// OmitAttrs keeps only record messages in the captured text.
	OmitAttrs bool
}

func (p Plugin) Build(a *app.App) {
	filter, filterErr := ParseFilter(p.Filter)
	if filterErr != nil {
		filter = MustParseFilter(DefaultFilter)
	}

	pipeline := NewPipeline(HandlerOptions{Filter: filter, OmitAttrs: p.OmitAttrs}, p.Sinks...)

	w := a.World()
	app.Insert(w, pipeline)
	app.Insert(w, &CapturedLogEvents{queue: pipeline.queue})
	app.Insert(w, &Store{})
	app.AddEvent[LogEvent](a)
	consumer := &logConsumer{}
	app.Insert(w, consumer)
	a.AddSystems(app.PreUpdate, TransferLogEvents, consumer.consume)

	a.SetLogger(pipeline.Logger())
	if p.SetDefault {
		slog.SetDefault(pipeline.Logger())
	}

	if filterErr != nil {
		pipeline.Logger().Warn("invalid log filter, using default", "filter", p.Filter, "default", DefaultFilter, "err", filterErr)
	}
}
