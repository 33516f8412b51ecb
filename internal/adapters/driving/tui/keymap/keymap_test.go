package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"quit", km.Quit, "ctrl+c"},
		{"help", km.Help, "?"},
		{"back", km.Back, "esc"},
		{"submit", km.Submit, "enter"},
		{"up arrow", km.Up, "up"},
		{"up while typing", km.Up, "ctrl+p"},
		{"down arrow", km.Down, "down"},
		{"next field", km.NextField, "tab"},
		{"previous field", km.PrevField, "shift+tab"},
		{"switch mode", km.SwitchMode, "ctrl+t"},
		{"switch sub mode", km.SwitchSubMode, "m"},
		{"clear", km.Clear, "backspace"},
		{"retry", km.Retry, "r"},
		{"new search", km.NewSearch, "n"},
		{"edit", km.Edit, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.binding.Keys(), tt.key)
		})
	}
}

func TestDefaultKeyMap_NavigationAvoidsLetters(t *testing.T) {
	km := DefaultKeyMap()

	for _, b := range []key.Binding{km.Up, km.Down, km.Submit, km.SwitchMode} {
		for _, k := range b.Keys() {
			assert.Greater(t, len(k), 1, "binding %q would swallow typed text", k)
		}
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 3)
	assert.Contains(t, km.FormHelp(), km.SwitchSubMode)
	assert.Contains(t, km.ResultsHelp(), km.Retry)
	assert.Len(t, km.FullHelp(), 4)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("ctrl+t", km.SwitchMode))
	assert.True(t, Matches("delete", km.Clear))
	assert.False(t, Matches("x", km.Clear))
	assert.False(t, Matches("", km.Submit))
}
