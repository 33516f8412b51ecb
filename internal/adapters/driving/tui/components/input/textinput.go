// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/styles"
)

// Placeholder is shown while the query box is empty.
const Placeholder = "e.g., Koramangala, Bangalore or 90210"

// maxQueryLength bounds what can be typed into the query box.
const maxQueryLength = 200

// QueryInput wraps a bubbles textinput for the quick-search box.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewQueryInput creates a focused query input.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "🔍 "
	ti.Focus()
	ti.CharLimit = maxQueryLength
	ti.Width = 50

	return &QueryInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the query input.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. changed reports whether the text differs
// from before the message.
func (q *QueryInput) Update(msg tea.Msg) (input *QueryInput, cmd tea.Cmd, changed bool) {
	before := q.textinput.Value()
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd, q.textinput.Value() != before
}

// View renders the query input.
func (q *QueryInput) View() string {
	box := q.styles.InputField
	if q.textinput.Focused() {
		box = q.styles.FocusedField
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, box.Render(q.textinput.View()))
}

// Value returns the current input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
	q.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (q *QueryInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes focus from the input.
func (q *QueryInput) Blur() {
	q.textinput.Blur()
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	// Border, padding and prompt
	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	q.textinput.Width = inputWidth
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the input.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
}
