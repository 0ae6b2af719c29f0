package main

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// newCommandLogger returns the logger for commands that run outside the
// frame loop. Terminals get text output; pipes and files get JSON.
func newCommandLogger(w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
