package headless

import (
	"github.com/modoterra/headless/pkg/app"
	"github.com/modoterra/headless/pkg/terminal"
)

// PollResult says whether the app should keep running.
type PollResult int

const (
	Continue PollResult = iota
	Quit
)

func (r PollResult) String() string {
	if r == Quit {
		return "quit"
	}
	return "continue"
}

// ShouldQuit holds this frame's PollResult.
type ShouldQuit struct {
	result PollResult
}

// Result returns this frame's decision.
func (s *ShouldQuit) Result() PollResult {
	return s.result
}

// TerminalResource is the app's terminal. Render steps draw through it.
type TerminalResource struct {
	terminal.Terminal
}

// PollTerminalInput reads at most one key press without blocking and
// records whether it asks to quit: "q" or ctrl+c.
func PollTerminalInput(w *app.World) {
	shouldQuit := app.MustGet[ShouldQuit](w)
	term := app.MustGet[TerminalResource](w)

	if key, ok := term.PollKey(); ok && isQuitKey(key) {
		shouldQuit.result = Quit
		return
	}
	shouldQuit.result = Continue
}

func isQuitKey(key terminal.Key) bool {
	return key == "q" || key == terminal.KeyCtrlC
}

// ExitSystem sends AppExit and restores the terminal once quitting was
// requested. A failed restore is logged; it never stops the exit.
func ExitSystem(w *app.World) {
	if app.MustGet[ShouldQuit](w).Result() != Quit {
		return
	}
	app.MustGet[app.Events[app.AppExit]](w).Send(app.AppExit{})
	if err := app.MustGet[TerminalResource](w).Restore(); err != nil {
		w.Logger().Error("failed to restore terminal", "err", err)
	}
}
