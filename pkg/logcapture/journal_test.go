package logcapture

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/modoterra/headless/pkg/core"
)

func TestJournalSinkRecord(t *testing.T) {
	var sent []string
	sink := &JournalSink{
		identifier: "demo",
		send: func(message string, priority journal.Priority, vars map[string]string) error {
			sent = append(sent, fmt.Sprintf("%s/%d/%s/%s", message, priority, vars["SYSLOG_IDENTIFIER"], vars["HEADLESS_COMPONENT"]))
			return nil
		},
	}
	sink.Record(core.LogMessage{Text: "boom", Level: slog.LevelError, Component: "render"})
	sink.Record(core.LogMessage{Text: "fine", Level: slog.LevelDebug})

	want := "boom/3/demo/render|fine/7/demo/"
	if got := strings.Join(sent, "|"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJournalPriority(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  journal.Priority
	}{
		{LevelTrace, journal.PriDebug},
		{slog.LevelDebug, journal.PriDebug},
		{slog.LevelInfo, journal.PriInfo},
		{slog.LevelWarn, journal.PriWarning},
		{slog.LevelError, journal.PriErr},
		{slog.LevelError + 4, journal.PriErr},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := journalPriority(tt.level); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
