package core

import (
	"log/slog"
	"time"
)

// LogMessage is the rendered text of one structured log event, as captured
// from the process's loggers. It is created once by the interceptor and
// never modified afterwards.
type LogMessage struct {
	Text      string     `json:"text"`
	Level     slog.Level `json:"level"`
	Component string     `json:"component,omitempty"`
	TsUnixMs  int64      `json:"ts_unix_ms"`
}

// NewLogMessage stamps text with the given level, component and time.
func NewLogMessage(text string, level slog.Level, component string, at time.Time) LogMessage {
	return LogMessage{
		Text:      text,
		Level:     level,
		Component: component,
		TsUnixMs:  at.UnixMilli(),
	}
}

// Time returns the capture timestamp.
func (m LogMessage) Time() time.Time {
	return time.UnixMilli(m.TsUnixMs)
}

// String returns the message text.
func (m LogMessage) String() string {
	return m.Text
}
