package logcapture

import (
	"strings"

	"github.com/modoterra/headless/pkg/core"
)

// Store holds every captured message, in capture order. It only grows.
// Renderers read it; only the consume step and Flush write to it.
type Store struct {
	logs []core.LogMessage
}

// Add appends a message.
func (s *Store) Add(msg core.LogMessage) {
	s.logs = append(s.logs, msg)
}

// Get returns every message so far joined by "\r\n".
func (s *Store) Get() string {
	var b strings.Builder
	for i, msg := range s.logs {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(msg.Text)
	}
	return b.String()
}

// Count returns the number of messages so far.
func (s *Store) Count() int {
	return len(s.logs)
}

// Messages returns a copy of the stored messages.
func (s *Store) Messages() []core.LogMessage {
	return append([]core.LogMessage(nil), s.logs...)
}
