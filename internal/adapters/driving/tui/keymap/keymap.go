// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view or closes an open list.
	Back key.Binding

	// Submit runs the search or confirms a choice.
	Submit key.Binding

	// Up and Down move through suggestions and lists. They avoid letter
	// keys so they work while typing.
	Up   key.Binding
	Down key.Binding

	// NextField and PrevField move focus on the detailed form.
	NextField key.Binding
	PrevField key.Binding

	// SwitchMode toggles quick and detailed search.
	SwitchMode key.Binding

	// SwitchSubMode toggles area and mandal search on the detailed form.
	SwitchSubMode key.Binding

	// Clear empties the focused form field.
	Clear key.Binding

	// Retry resubmits a failed search.
	Retry key.Binding

	// NewSearch clears everything and starts over.
	NewSearch key.Binding

	// Edit returns focus to the query or form after a search.
	Edit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		SwitchMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "quick/detailed"),
		),
		SwitchSubMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "area/mandal"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "clear field"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "/"),
			key.WithHelp("e", "edit"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.SwitchMode, k.Back}
}

// FormHelp returns keybindings for the detailed form.
func (k *KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.SwitchSubMode, k.Clear, k.Back}
}

// ResultsHelp returns keybindings shown once a search has run.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Edit, k.Retry, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Submit},
		{k.NextField, k.PrevField, k.SwitchSubMode, k.Clear},
		{k.SwitchMode, k.Retry, k.NewSearch, k.Edit},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
