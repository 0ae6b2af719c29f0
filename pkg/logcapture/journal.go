package logcapture

import (
	"log/slog"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/modoterra/headless/pkg/core"
)

// JournalSink forwards captured messages to the systemd journal. Send
// errors are dropped: the journal is a secondary copy and the sink cannot
// log about itself.
type JournalSink struct {
	identifier string
	send       func(message string, priority journal.Priority, vars map[string]string) error
}

// NewJournalSink returns a sink tagging entries with identifier, or false
// when journald is not reachable.
func NewJournalSink(identifier string) (*JournalSink, bool) {
	if !journal.Enabled() {
		return nil, false
	}
	return &JournalSink{identifier: identifier, send: journal.Send}, true
}

func (s *JournalSink) Record(msg core.LogMessage) {
	vars := map[string]string{"SYSLOG_IDENTIFIER": s.identifier}
	if msg.Component != "" {
		vars["HEADLESS_COMPONENT"] = msg.Component
	}
	_ = s.send(msg.Text, journalPriority(msg.Level), vars)
}

func journalPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}
