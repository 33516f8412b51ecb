package search

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/keymap"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/session"
)

func (v *View) handleQueryKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		if v.dropdownKind == dropdownSuggestions {
			v.dispatch(session.SuggestionsDismissed{})
			return v, nil
		}
		return v, backToMenu

	case keymap.Matches(keyStr, v.keymap.Up):
		v.dropdown.MoveUp()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Down):
		v.dropdown.MoveDown()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Submit):
		if choice, ok := v.dropdown.Selected(); ok && v.dropdownKind != dropdownNone {
			v.dispatch(session.SuggestionChosen{Text: choice})
			v.focusResult()
			v.syncStatus()
			return v, nil
		}
		query := v.input.Value()
		if strings.TrimSpace(query) == "" {
			return v, nil
		}
		v.dispatch(session.SearchSubmitted{Query: query})
		v.focusResult()
		v.syncStatus()
		return v, nil
	}

	var (
		cmd     tea.Cmd
		changed bool
	)
	v.input, cmd, changed = v.input.Update(msg)
	if changed {
		v.dispatch(session.QueryTyped{Text: v.input.Value()})
	}
	return v, cmd
}

// syncDropdown lists autocomplete suggestions while they are shown, or
// the example queries while nothing has been typed or searched.
func (v *View) syncDropdown() {
	sess := v.state.Session

	kind := dropdownNone
	var items []string
	switch {
	case v.state.Mode != domain.SearchModeQuick:
	case sess.ShowSuggestions && len(sess.Suggestions) > 0:
		kind = dropdownSuggestions
		items = sess.Suggestions
	case !sess.HasSearched && strings.TrimSpace(sess.Query) == "":
		kind = dropdownExamples
		items = domain.SuggestedQueries()
	}

	if kind == v.dropdownKind && sameItems(items, v.dropdown.Items()) {
		return
	}
	v.dropdownKind = kind
	v.dropdown.SetItems(items)
}

func (v *View) renderQuick() string {
	var b strings.Builder
	b.WriteString(v.input.View())

	switch v.dropdownKind {
	case dropdownSuggestions:
		b.WriteString("\n")
		b.WriteString(v.dropdown.View())
	case dropdownExamples:
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("  Try one of these:"))
		b.WriteString("\n")
		b.WriteString(v.dropdown.View())
	case dropdownNone:
		if v.focus == focusQuery && !v.state.Session.HasSearched {
			b.WriteString("\n")
			b.WriteString(v.styles.Help.Render("  enter to search  ↑/↓ to pick a suggestion"))
		}
	}
	return b.String()
}
