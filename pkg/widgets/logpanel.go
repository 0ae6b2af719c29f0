package widgets

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/modoterra/headless/pkg/terminal"
)

// LogPanel renders log text in a bordered box, scrolled so that the newest
// lines are visible.
type LogPanel struct {
	Title string
	Text  string

	// Renderer styles the panel. Nil means lipgloss's default renderer.
	Renderer *lipgloss.Renderer
}

// borderSize is the cells taken by the rounded border on each axis.
const borderSize = 2

// View renders the panel to fill size. It returns "" when size is too
// small to hold the border, the title and one line of text.
func (p LogPanel) View(size terminal.Size) string {
	innerW := size.Width - borderSize
	innerH := size.Height - borderSize - 1
	if innerW < 1 || innerH < 1 {
		return ""
	}

	r := p.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	boxStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(innerW)

	text := strings.ReplaceAll(p.Text, "\r\n", "\n")
	wrapped := r.NewStyle().Width(innerW).Render(text)

	vp := viewport.New(innerW, innerH)
	vp.SetContent(wrapped)
	vp.GotoBottom()

	title := titleStyle.Render(runewidth.Truncate(p.Title, innerW, "…"))
	return boxStyle.Render(title + "\n" + vp.View())
}
