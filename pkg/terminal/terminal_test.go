package terminal

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestFrame(t *testing.T) {
	f := NewFrame(Size{Width: 10, Height: 4})
	if f.Size().Width != 10 || f.Size().Height != 4 {
		t.Errorf("size: got %+v", f.Size())
	}
	f.Render("a")
	f.Render("b")
	if f.View() != "b" {
		t.Errorf("view: got %q", f.View())
	}
}

func TestNop(t *testing.T) {
	var term Terminal = Nop{}

	called := false
	err := term.Draw(func(f *Frame) {
		called = true
		if f.Size() != (Size{}) {
			t.Errorf("expected zero size, got %+v", f.Size())
		}
	})
	if err != nil || !called {
		t.Errorf("draw: err=%v called=%v", err, called)
	}
	if _, ok := term.PollKey(); ok {
		t.Error("nop terminal reported a key")
	}
	if err := term.Restore(); err != nil {
		t.Error(err)
	}
}

func TestSetupRejectsNonTerminalOutput(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, err = Setup(WithOutput(f))
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("got %v, want ErrNotTerminal", err)
	}
}

// syncBuffer guards a bytes.Buffer written by the program's renderer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestScreenRoundTrip(t *testing.T) {
	in, keys := io.Pipe()
	out := &syncBuffer{}

	s, err := Setup(WithInput(in), WithOutput(out), WithAltScreen(false))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := keys.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}
	var key Key
	deadline := time.Now().Add(5 * time.Second)
	for {
		k, ok := s.PollKey()
		if ok {
			key = k
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for key")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if key != "q" {
		t.Errorf("key: got %q", key)
	}

	if err := s.Draw(func(f *Frame) { f.Render("frame contents") }); err != nil {
		t.Fatal(err)
	}

	keys.Close()
	if err := s.Restore(); err != nil {
		t.Fatal(err)
	}
	if err := s.Restore(); err != nil {
		t.Errorf("second restore: %v", err)
	}
	if err := s.Draw(func(*Frame) {}); !errors.Is(err, ErrClosed) {
		t.Errorf("draw after restore: got %v, want ErrClosed", err)
	}
	if !strings.Contains(out.String(), "frame contents") {
		t.Errorf("output missing frame: %q", out.String())
	}
}
