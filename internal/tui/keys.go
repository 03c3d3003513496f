package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the global key bindings. Everything else goes to the
// focused form.
type KeyMap struct {
	Back Key
	Quit Key

	// Function keys for module navigation
	F1  Key
	F2  Key
	F3  Key
	F10 Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: Key{
			Keys:    []string{"esc"},
			Help:    "back",
			Enabled: true,
		},
		Quit: Key{
			Keys:    []string{"ctrl+c"},
			Help:    "quit",
			Enabled: true,
		},

		F1: Key{
			Keys:    []string{"f1"},
			Help:    "Help",
			Enabled: true,
		},
		F2: Key{
			Keys:    []string{"f2"},
			Help:    "Planner",
			Enabled: true,
		},
		F3: Key{
			Keys:    []string{"f3"},
			Help:    "Settings",
			Enabled: true,
		},
		F10: Key{
			Keys:    []string{"f10"},
			Help:    "Quit",
			Enabled: true,
		},
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// IsFunctionKey checks if the key message is a module function key.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3)
}

// GetFunctionKeyModule returns the module for a function key.
func (km KeyMap) GetFunctionKeyModule(msg tea.KeyMsg) Module {
	switch {
	case km.F1.Matches(msg):
		return ModuleHelp
	case km.F2.Matches(msg):
		return ModulePlanner
	case km.F3.Matches(msg):
		return ModuleSettings
	default:
		return ""
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp(narrow bool) string {
	if narrow {
		return "F1 Help F2 Plan F3 Settings F10 Quit"
	}
	var parts []string
	for _, k := range []Key{km.F1, km.F2, km.F3, km.F10} {
		parts = append(parts, "["+strings.ToUpper(k.Keys[0])+"]"+k.Help)
	}
	return strings.Join(parts, " ")
}
