package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/modoterra/headless/pkg/queue"
)

// Option configures Setup.
type Option func(*options)

type options struct {
	altScreen bool
	input     io.Reader
	output    io.Writer
}

// WithAltScreen selects whether to draw on the alternate screen. It is on
// by default.
func WithAltScreen(on bool) Option {
	return func(o *options) { o.altScreen = on }
}

// WithInput reads keys from r instead of os.Stdin.
func WithInput(r io.Reader) Option {
	return func(o *options) { o.input = r }
}

// WithOutput draws to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// Screen is a Terminal driven by a bubbletea program running on its own
// goroutine. Frames are handed to the program as messages; key presses come
// back through a queue that PollKey drains one key at a time.
type Screen struct {
	program *tea.Program
	state   *screenState
	done    chan struct{}
	runErr  error

	restoreOnce sync.Once
	restoreErr  error
}

// screenState is shared between the frame goroutine and the program.
type screenState struct {
	width  atomic.Int32
	height atomic.Int32
	keys   *queue.Queue[Key]
}

func (s *screenState) size() Size {
	return Size{Width: int(s.width.Load()), Height: int(s.height.Load())}
}

// Setup enters raw mode (and the alternate screen, unless disabled) and
// starts the program. It fails with ErrNotTerminal when the output is a
// file that is not a terminal.
func Setup(opts ...Option) (*Screen, error) {
	o := options{altScreen: true, input: os.Stdin, output: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if f, ok := o.output.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("%w: %s", ErrNotTerminal, f.Name())
	}

	state := &screenState{keys: queue.New[Key]()}
	teaOpts := []tea.ProgramOption{
		tea.WithInput(o.input),
		tea.WithOutput(o.output),
		// The app handles signals itself and decides when to restore.
		tea.WithoutSignalHandler(),
	}
	if o.altScreen {
		teaOpts = append(teaOpts, tea.WithAltScreen())
	}

	s := &Screen{
		program: tea.NewProgram(screenModel{state: state}, teaOpts...),
		state:   state,
		done:    make(chan struct{}),
	}
	go s.run()
	return s, nil
}

func (s *Screen) run() {
	_, err := s.program.Run()
	s.runErr = err
	close(s.done)
}

// Size returns the last size the terminal reported.
func (s *Screen) Size() Size {
	return s.state.size()
}

func (s *Screen) Draw(render func(*Frame)) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	f := NewFrame(s.state.size())
	render(f)
	s.program.Send(drawMsg(f.view))
	return nil
}

func (s *Screen) PollKey() (Key, bool) {
	return s.state.keys.TryPop()
}

// Restore stops the program, which leaves raw mode and the alternate
// screen and shows the cursor again, and waits for it to exit.
func (s *Screen) Restore() error {
	s.restoreOnce.Do(func() {
		s.program.Quit()
		<-s.done
		s.state.keys.Close()
		if s.runErr != nil && !errors.Is(s.runErr, tea.ErrProgramKilled) {
			s.restoreErr = fmt.Errorf("restore terminal: %w", s.runErr)
		}
	})
	return s.restoreErr
}
