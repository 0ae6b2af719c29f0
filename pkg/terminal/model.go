package terminal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// drawMsg carries a rendered frame into the program.
type drawMsg string

// screenModel shows whatever frame was drawn last and forwards input to
// the shared state. It never quits on its own; Restore does that.
type screenModel struct {
	state *screenState
	view  string
}

func (m screenModel) Init() tea.Cmd {
	return nil
}

func (m screenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.width.Store(int32(msg.Width))
		m.state.height.Store(int32(msg.Height))

	case tea.KeyMsg:
		// Keys arriving after Restore closed the queue are dropped.
		_ = m.state.keys.Push(Key(msg.String()))

	case drawMsg:
		m.view = string(msg)
	}
	return m, nil
}

func (m screenModel) View() string {
	return m.view
}
