package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/styles"
)

func typeRunes(q *QueryInput, text string) bool {
	var changed bool
	for _, r := range text {
		var c bool
		q, _, c = q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		changed = changed || c
	}
	return changed
}

func TestNewQueryInput(t *testing.T) {
	q := NewQueryInput(styles.DefaultStyles())

	require.NotNil(t, q)
	assert.Empty(t, q.Value())
	assert.True(t, q.Focused())
}

func TestNewQueryInput_NilStyles(t *testing.T) {
	q := NewQueryInput(nil)

	require.NotNil(t, q)
	assert.NotNil(t, q.styles)
}

func TestQueryInput_Init(t *testing.T) {
	assert.NotNil(t, NewQueryInput(nil).Init())
}

func TestQueryInput_UpdateReportsChange(t *testing.T) {
	q := NewQueryInput(nil)

	assert.True(t, typeRunes(q, "Kora"))
	assert.Equal(t, "Kora", q.Value())

	_, _, changed := q.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed)

	_, _, changed = q.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.False(t, changed)

	_, _, changed = q.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, changed)
	assert.Equal(t, "Kor", q.Value())
}

func TestQueryInput_BlurredIgnoresKeys(t *testing.T) {
	q := NewQueryInput(nil)
	q.Blur()

	assert.False(t, typeRunes(q, "abc"))
	assert.Empty(t, q.Value())
}

func TestQueryInput_CharLimit(t *testing.T) {
	q := NewQueryInput(nil)
	long := make([]rune, maxQueryLength+20)
	for i := range long {
		long[i] = 'a'
	}

	q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: long})

	assert.Len(t, q.Value(), maxQueryLength)
}

func TestQueryInput_SetValueAndReset(t *testing.T) {
	q := NewQueryInput(nil)

	q.SetValue("90210")
	assert.Equal(t, "90210", q.Value())

	q.Reset()
	assert.Empty(t, q.Value())
}

func TestQueryInput_SetWidth(t *testing.T) {
	q := NewQueryInput(nil)

	q.SetWidth(100)
	assert.Equal(t, 100, q.Width())
	assert.Equal(t, 92, q.textinput.Width)

	q.SetWidth(10)
	assert.Equal(t, 20, q.textinput.Width)
}

func TestQueryInput_View(t *testing.T) {
	q := NewQueryInput(nil)
	q.SetValue("Warangal")

	assert.Contains(t, q.View(), "Warangal")
}
