package logcapture

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// LevelTrace is more verbose than slog.LevelDebug.
const LevelTrace = slog.LevelDebug - 4

// DefaultFilter is used when no directive is configured.
const DefaultFilter = "debug"

// Filter decides the minimum level per component. It is parsed from a
// directive string such as "info,render=warn,physics=trace": one bare
// level for everything, then component=level overrides. A record's
// component is the value of its "component" attribute.
type Filter struct {
	def        slog.Level
	components map[string]slog.Level
}

// ParseFilter parses a directive string. An empty string yields the
// default directive.
func ParseFilter(directives string) (Filter, error) {
	f := Filter{def: slog.LevelDebug}
	if strings.TrimSpace(directives) == "" {
		return f, nil
	}

	for _, d := range strings.Split(directives, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, lvl, hasName := strings.Cut(d, "=")
		if !hasName {
			level, err := ParseLevel(d)
			if err != nil {
				return Filter{}, fmt.Errorf("filter directive %q: %w", d, err)
			}
			f.def = level
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return Filter{}, fmt.Errorf("filter directive %q: missing component name", d)
		}
		level, err := ParseLevel(strings.TrimSpace(lvl))
		if err != nil {
			return Filter{}, fmt.Errorf("filter directive %q: %w", d, err)
		}
		if f.components == nil {
			f.components = make(map[string]slog.Level)
		}
		f.components[name] = level
	}
	return f, nil
}

// MustParseFilter is like ParseFilter but panics on error.
func MustParseFilter(directives string) Filter {
	f, err := ParseFilter(directives)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseLevel accepts trace, debug, info, warn (or warning) and error in any
// case, plus anything slog.Level.UnmarshalText accepts, such as "INFO+2".
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, nil
	case "warning":
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}

// Level returns the minimum level for records from component.
func (f Filter) Level(component string) slog.Level {
	if level, ok := f.components[component]; ok {
		return level
	}
	return f.def
}

// MinLevel returns the most verbose level any component accepts.
func (f Filter) MinLevel() slog.Level {
	lowest := f.def
	for _, level := range f.components {
		if level < lowest {
			lowest = level
		}
	}
	return lowest
}

// String renders the filter back into directive form.
func (f Filter) String() string {
	parts := []string{levelName(f.def)}
	names := make([]string, 0, len(f.components))
	for name := range f.components {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+"="+levelName(f.components[name]))
	}
	return strings.Join(parts, ",")
}

func levelName(level slog.Level) string {
	if level == LevelTrace {
		return "trace"
	}
	return strings.ToLower(level.String())
}
