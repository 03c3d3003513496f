package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// newE2EApp creates an App for end-to-end testing via teatest.
// Unlike newTestApp, this does NOT pre-configure width/height/ready
// since teatest sends WindowSizeMsg via WithInitialTermSize.
func newE2EApp(t *testing.T) *App {
	t.Helper()
	return newUnsizedApp(t, "")
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

// --- End-to-end tests ---
// These launch the real Bubble Tea program in a headless virtual terminal,
// send actual keystrokes, and assert on the rendered screen output.

func TestE2E_PlannerOnStartup(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("SALES TARGET")) &&
			bytes.Contains(bts, []byte("PRODUCTION PLAN"))
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_CalculateDefaults(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SALES TARGET")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitFor(t, tm, "1 kg 400 g")
}

func TestE2E_ClearPlan(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitFor(t, tm, "1 kg 400 g")

	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "Fill in the sales form")
}

func TestE2E_NavigateToSettings(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SALES TARGET")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "BRANCH SETTINGS")

	tm.Send(tea.KeyMsg{Type: tea.KeyF2})
	waitFor(t, tm, "SALES TARGET")
}

func TestE2E_SaveSettingsSessionOnly(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "BRANCH SETTINGS")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitFor(t, tm, "Settings applied for this session")
}

func TestE2E_HelpScreenAndBack(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SALES TARGET")

	// F1 → Help
	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "NAVIGATION")

	// Esc → Back to the planner
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "SALES TARGET")
}

func TestE2E_QuitFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "SALES TARGET")

	// F10 → confirm dialog
	tm.Send(tea.KeyMsg{Type: tea.KeyF10})
	waitFor(t, tm, "CONFIRM EXIT")

	// Press y → quit
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	// Program should terminate; verify final model state
	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatal("expected *App final model")
	}
	if !app.quitting {
		t.Error("expected app to be quitting")
	}
}

func TestE2E_QuitCancel(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SALES TARGET")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	waitFor(t, tm, "CONFIRM EXIT")

	// Press n → cancel
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	// Verify app is still responsive by navigating to another module
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "BRANCH SETTINGS")
}

func TestE2E_NarrowTerminal(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(50, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Tab:Next  Ctrl+S:Calculate")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "BRANCH SETTINGS")
}

func TestE2E_StatusBarShowsKeyBindings(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("[F1]Help")) &&
			bytes.Contains(bts, []byte("[F3]Settings")) &&
			bytes.Contains(bts, []byte("[F10]Quit"))
	}, teatest.WithDuration(5*time.Second))
}
