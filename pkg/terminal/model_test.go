package terminal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/headless/pkg/queue"
)

func newTestModel() screenModel {
	return screenModel{state: &screenState{keys: queue.New[Key]()}}
}

func TestModelTracksWindowSize(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if got := m.state.size(); got != (Size{Width: 120, Height: 40}) {
		t.Errorf("got %+v", got)
	}
}

func TestModelQueuesKeys(t *testing.T) {
	m := newTestModel()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	var got []Key
	for {
		k, ok := m.state.keys.TryPop()
		if !ok {
			break
		}
		got = append(got, k)
	}
	want := []Key{"q", KeyCtrlC, KeyEnter}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestModelShowsLastDraw(t *testing.T) {
	m := newTestModel()
	if m.View() != "" {
		t.Errorf("expected empty view, got %q", m.View())
	}

	next, cmd := m.Update(drawMsg("first"))
	if cmd != nil {
		t.Error("draw should not produce a command")
	}
	next, _ = next.Update(drawMsg("second"))
	if got := next.View(); got != "second" {
		t.Errorf("got %q", got)
	}
}

func TestModelDoesNotQuitOnQuitKeys(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Error("the model must leave quitting to the app")
	}
}
