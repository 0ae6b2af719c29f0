package app

import (
	"fmt"
	"log/slog"
	"reflect"
)

// World holds the shared state that systems read and mutate: resources
// keyed by their Go type, and the host logger. A World is only ever touched
// from the goroutine running the schedule.
type World struct {
	resources map[reflect.Type]any
	logger    *slog.Logger
}

func newWorld() *World {
	return &World{
		resources: make(map[reflect.Type]any),
		logger:    slog.Default(),
	}
}

// Logger returns the host logger.
func (w *World) Logger() *slog.Logger {
	return w.logger
}

// Insert stores v as the resource of type T, replacing any previous one.
func Insert[T any](w *World, v *T) {
	w.resources[reflect.TypeFor[T]()] = v
}

// Get returns the resource of type T.
func Get[T any](w *World) (*T, bool) {
	v, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// MustGet returns the resource of type T and panics if it was never
// inserted. Systems use it for resources their plugin guarantees.
func MustGet[T any](w *World) *T {
	v, ok := Get[T](w)
	if !ok {
		panic(fmt.Sprintf("app: resource %s does not exist", reflect.TypeFor[T]()))
	}
	return v
}

// Remove deletes the resource of type T, if present.
func Remove[T any](w *World) {
	delete(w.resources, reflect.TypeFor[T]())
}
