// Package terminal puts the process's terminal into raw mode, draws frames
// onto it and reports key presses, behind the small Terminal interface that
// the frame loop depends on.
package terminal

import "errors"

var (
	// ErrClosed is returned by Draw once the terminal has been restored or
	// its program has exited.
	ErrClosed = errors.New("terminal closed")

	// ErrNotTerminal is returned by Setup when the output is not a TTY.
	ErrNotTerminal = errors.New("output is not a terminal")
)

// Terminal is what frame steps need from the terminal.
type Terminal interface {
	// Draw calls render with a frame sized to the terminal and shows the
	// result.
	Draw(render func(*Frame)) error

	// PollKey returns the oldest unread key press without blocking.
	PollKey() (Key, bool)

	// Restore leaves raw mode and the alternate screen. It is safe to call
	// more than once.
	Restore() error
}

// Key names a key press the way bubbletea prints it: "q", "enter",
// "ctrl+c", "alt+x".
type Key string

const (
	KeyCtrlC Key = "ctrl+c"
	KeyEsc   Key = "esc"
	KeyEnter Key = "enter"
)

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Frame is the drawing surface handed to a render callback.
type Frame struct {
	size Size
	view string
}

// NewFrame returns an empty frame of the given size.
func NewFrame(size Size) *Frame {
	return &Frame{size: size}
}

// Size returns the frame's size.
func (f *Frame) Size() Size {
	return f.size
}

// Render sets the frame's content, replacing anything rendered before.
func (f *Frame) Render(view string) {
	f.view = view
}

// View returns the frame's content.
func (f *Frame) View() string {
	return f.view
}

// Nop is a Terminal with no screen. Draw runs the render callback against
// a zero-sized frame and discards it; no keys are ever reported.
type Nop struct{}

func (Nop) Draw(render func(*Frame)) error {
	render(NewFrame(Size{}))
	return nil
}

func (Nop) PollKey() (Key, bool) { return "", false }

func (Nop) Restore() error { return nil }
