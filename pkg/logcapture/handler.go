package logcapture

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/modoterra/headless/pkg/core"
)

// ComponentKey is the attribute naming the subsystem that logged a record.
// The Filter keys its per-component levels on it.
const ComponentKey = "component"

// HandlerOptions configure a Handler.
type HandlerOptions struct {
	// Filter decides which records are captured. The zero Filter captures
	// info and above.
	Filter Filter

	// OmitAttrs drops attributes from the captured text, leaving only the
	// record message.
	OmitAttrs bool

	// Now stamps captured messages. Defaults to time.Now.
	Now func() time.Time
}

// Handler is a slog.Handler that extracts the message of every record and
// passes it to a Sink. It can be called from any number of goroutines at
// once; handlers derived with WithAttrs or WithGroup share the sink.
type Handler struct {
	sink      Sink
	opts      HandlerOptions
	component string
	prefix    string
	attrs     []string
}

// NewHandler creates a handler delivering captured messages to sink.
func NewHandler(sink Sink, opts HandlerOptions) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{sink: sink, opts: opts}
}

// Enabled reports whether any component accepts records at level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Filter.MinLevel()
}

// Handle captures the record's message. The message is Record.Message or,
// when that is empty, a top-level "message" or "msg" attribute. Records
// with neither are ignored.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	message := record.Message
	component := h.component
	// Cap the slice so appends never write into the shared handler state.
	attrs := h.attrs[:len(h.attrs):len(h.attrs)]

	record.Attrs(func(attr slog.Attr) bool {
		switch {
		case attr.Key == ComponentKey && h.prefix == "":
			component = attr.Value.String()
		case message == "" && h.prefix == "" && (attr.Key == "message" || attr.Key == "msg"):
			message = attr.Value.String()
		default:
			if !h.opts.OmitAttrs {
				attrs = appendAttr(attrs, h.prefix, attr)
			}
		}
		return true
	})

	if message == "" {
		return nil
	}
	if record.Level < h.opts.Filter.Level(component) {
		return nil
	}

	text := message
	if len(attrs) > 0 {
		text += " (" + strings.Join(attrs, ", ") + ")"
	}

	at := record.Time
	if at.IsZero() {
		at = h.opts.Now()
	}
	h.sink.Record(core.NewLogMessage(text, record.Level, component, at))
	return nil
}

// WithAttrs returns a handler that includes attrs with every record. A
// top-level "component" attribute sets the component used for filtering.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	derived := h.clone()
	for _, attr := range attrs {
		if attr.Key == ComponentKey && h.prefix == "" {
			derived.component = attr.Value.String()
			continue
		}
		if !h.opts.OmitAttrs {
			derived.attrs = appendAttr(derived.attrs, h.prefix, attr)
		}
	}
	return derived
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	derived := h.clone()
	derived.prefix = h.prefix + name + "."
	return derived
}

func (h *Handler) clone() *Handler {
	return &Handler{
		sink:      h.sink,
		opts:      h.opts,
		component: h.component,
		prefix:    h.prefix,
		attrs:     append([]string(nil), h.attrs...),
	}
}

// appendAttr renders attr as key=value, flattening groups.
func appendAttr(dst []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += attr.Key + "."
		}
		for _, ga := range attr.Value.Group() {
			dst = appendAttr(dst, groupPrefix, ga)
		}
		return dst
	}
	return append(dst, prefix+attr.Key+"="+attr.Value.String())
}
