package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pattyplanner/pattyplanner/internal/config"
	"github.com/pattyplanner/pattyplanner/internal/services/planner"
	"github.com/pattyplanner/pattyplanner/internal/testutil"
	"github.com/pattyplanner/pattyplanner/internal/util"
)

// testNow is the wall clock every TUI test runs at.
var testNow = testutil.Now

// newUnsizedApp creates an App with the default config, a fixed clock and
// sequential plan IDs. configPath may be empty.
func newUnsizedApp(t *testing.T, configPath string) *App {
	t.Helper()

	clock := util.FixedClock{T: testNow}
	svc := planner.NewService(util.NewSequentialIDGenerator(1), clock)

	return New(context.Background(), config.Default(), configPath, svc, clock)
}

// newTestApp creates an App sized to 120x40 and marked ready.
func newTestApp(t *testing.T) *App {
	t.Helper()

	app := newUnsizedApp(t, "")
	app.width = 120
	app.height = 40
	app.ready = true

	return app
}

// send feeds msg to the app and runs any returned command synchronously,
// feeding its message back in. Batches and ticks are not followed.
func send(t *testing.T, app *App, msg tea.Msg) {
	t.Helper()

	_, cmd := app.Update(msg)
	if cmd == nil {
		return
	}
	switch out := cmd().(type) {
	case calculatedMsg, settingsSavedMsg:
		send(t, app, out)
	}
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
