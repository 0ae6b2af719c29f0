package logcapture

import (
	"log/slog"
	"testing"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input     string
		wantDef   slog.Level
		component string
		wantComp  slog.Level
		wantError bool
	}{
		{"", slog.LevelDebug, "any", slog.LevelDebug, false},
		{"info", slog.LevelInfo, "any", slog.LevelInfo, false},
		{"trace", LevelTrace, "any", LevelTrace, false},
		{"WARN", slog.LevelWarn, "any", slog.LevelWarn, false},
		{"info,render=warning", slog.LevelInfo, "render", slog.LevelWarn, false},
		{" error , net = debug ", slog.LevelError, "net", slog.LevelDebug, false},
		{"render=error", slog.LevelDebug, "render", slog.LevelError, false},
		{"info+2", slog.LevelInfo + 2, "any", slog.LevelInfo + 2, false},
		{"verbose", 0, "", 0, true},
		{"=info", 0, "", 0, true},
		{"render=loud", 0, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFilter(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := f.Level("unlisted"); got != tt.wantDef {
				t.Errorf("default: got %v, want %v", got, tt.wantDef)
			}
			if got := f.Level(tt.component); got != tt.wantComp {
				t.Errorf("component %q: got %v, want %v", tt.component, got, tt.wantComp)
			}
		})
	}
}

func TestFilterMinLevel(t *testing.T) {
	f := MustParseFilter("warn,a=error,b=trace")
	if f.MinLevel() != LevelTrace {
		t.Errorf("got %v, want trace", f.MinLevel())
	}
}

func TestFilterString(t *testing.T) {
	f := MustParseFilter("info,zeta=trace,alpha=warn")
	want := "info,alpha=warn,zeta=trace"
	if f.String() != want {
		t.Errorf("got %q, want %q", f.String(), want)
	}
	again := MustParseFilter(f.String())
	if again.String() != want {
		t.Errorf("reparse: got %q", again.String())
	}
}
