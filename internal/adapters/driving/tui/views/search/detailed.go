package search

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/keymap"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/session"
)

// The form rows are the sub-mode's levels followed by the submit button.

func (v *View) levels() []domain.Level {
	return v.state.Form.Levels()
}

func (v *View) onSubmitRow() bool {
	return v.field == len(v.levels())
}

func (v *View) focusedLevel() (domain.Level, bool) {
	levels := v.levels()
	if v.field < 0 || v.field >= len(levels) {
		return 0, false
	}
	return levels[v.field], true
}

// enabled reports whether a level can be chosen, which needs its parent.
func (v *View) enabled(l domain.Level) bool {
	parent, ok := l.Parent()
	return !ok || v.state.Form.Selection.Get(parent) != ""
}

func (v *View) clampField() {
	if last := len(v.levels()); v.field > last {
		v.field = last
	}
	if v.field < 0 {
		v.field = 0
	}
}

func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.pickerOpen {
		return v.handlePickerKey(msg)
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, backToMenu

	case keymap.Matches(keyStr, v.keymap.Up), keymap.Matches(keyStr, v.keymap.PrevField),
		keyStr == "k":
		if v.field > 0 {
			v.field--
		}

	case keymap.Matches(keyStr, v.keymap.Down), keymap.Matches(keyStr, v.keymap.NextField),
		keyStr == "j":
		if v.field < len(v.levels()) {
			v.field++
		}

	case keymap.Matches(keyStr, v.keymap.SwitchSubMode):
		next := domain.SubModeMandal
		if v.state.Form.SubMode == domain.SubModeMandal {
			next = domain.SubModeArea
		}
		v.dispatch(session.SubModeSwitched{Mode: next})

	case keymap.Matches(keyStr, v.keymap.Clear):
		if l, ok := v.focusedLevel(); ok && v.state.Form.Selection.Get(l) != "" {
			v.dispatch(session.LocationSet{Level: l, Value: ""})
		}

	case keymap.Matches(keyStr, v.keymap.Submit):
		if v.onSubmitRow() {
			if v.state.Form.Valid() && !v.state.Session.Loading() {
				v.dispatch(session.DetailedSubmitted{})
				v.focusResult()
			}
			break
		}
		v.openPicker()
	}

	v.syncStatus()
	return v, nil
}

func (v *View) handlePickerKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		v.closePicker()

	case keymap.Matches(keyStr, v.keymap.Up):
		v.picker.MoveUp()

	case keymap.Matches(keyStr, v.keymap.Down):
		v.picker.MoveDown()

	case keymap.Matches(keyStr, v.keymap.Submit):
		choice, ok := v.picker.Selected()
		if !ok {
			break
		}
		level := v.pickerLevel
		v.closePicker()
		v.dispatch(session.LocationSet{Level: level, Value: choice})
		if v.field < len(v.levels()) {
			v.field++
		}

	case msg.Type == tea.KeyBackspace:
		if f := []rune(v.picker.Filter()); len(f) > 0 {
			v.picker.SetFilter(string(f[:len(f)-1]))
		}

	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		v.picker.SetFilter(v.picker.Filter() + string(msg.Runes))
	}

	return v, nil
}

func (v *View) openPicker() {
	l, ok := v.focusedLevel()
	if !ok || !v.enabled(l) {
		return
	}
	v.pickerOpen = true
	v.pickerLevel = l
	v.picker.SetItems(v.state.Form.List(l))
	v.picker.SetCursor(0)
	if current := v.state.Form.Selection.Get(l); current != "" {
		for i, item := range v.picker.Visible() {
			if item == current {
				v.picker.SetCursor(i)
				break
			}
		}
	}
}

func (v *View) closePicker() {
	v.pickerOpen = false
	v.picker.SetItems(nil)
}

// syncPicker follows list loads and cascades while a picker is open.
func (v *View) syncPicker() {
	if !v.pickerOpen {
		return
	}
	l, ok := v.focusedLevel()
	if !ok || l != v.pickerLevel || !v.enabled(l) || v.state.Mode != domain.SearchModeDetailed {
		v.closePicker()
		return
	}
	items := v.state.Form.List(l)
	if !sameItems(items, v.picker.Items()) {
		filter := v.picker.Filter()
		v.picker.SetItems(items)
		v.picker.SetCursor(0)
		if filter != "" {
			v.picker.SetFilter(filter)
		}
	}
}

func (v *View) renderForm() string {
	form := v.state.Form
	var b strings.Builder

	b.WriteString(v.styles.Label.Render("Search by"))
	for _, mode := range []domain.SubMode{domain.SubModeArea, domain.SubModeMandal} {
		mark := "( )"
		style := v.styles.Muted
		if form.SubMode == mode {
			mark = "(•)"
			style = v.styles.Normal
		}
		b.WriteString(style.Render(mark+" "+mode.Description()) + "  ")
	}
	b.WriteString(v.styles.Help.Render("[m] toggle"))
	b.WriteString("\n\n")

	for i, l := range v.levels() {
		cursor := "  "
		if v.focus == focusForm && i == v.field {
			cursor = v.styles.Subtitle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(v.styles.Label.Render(l.Label()))
		b.WriteString(v.renderFieldValue(l))
		b.WriteString("\n")

		if v.pickerOpen && l == v.pickerLevel {
			b.WriteString(v.renderPicker(l))
		}
	}

	b.WriteString("\n")
	cursor := "  "
	if v.focus == focusForm && v.onSubmitRow() {
		cursor = v.styles.Subtitle.Render("> ")
	}
	b.WriteString(cursor)
	if form.Valid() && !v.state.Session.Loading() {
		b.WriteString(v.styles.Button.Render("Find Postal Code"))
	} else {
		b.WriteString(v.styles.ButtonDisabled.Render("Find Postal Code"))
		if missing := form.Missing(); len(missing) > 0 {
			b.WriteString("  " + v.styles.Muted.Render("needs "+strings.ToLower(missing[0].Label())))
		}
	}
	return b.String()
}

func (v *View) renderFieldValue(l domain.Level) string {
	form := v.state.Form
	if value := form.Selection.Get(l); value != "" {
		return v.styles.Normal.Render(value)
	}
	if form.IsLoading(l) {
		return v.spinner.View() + " " + v.styles.Muted.Render("Loading...")
	}
	if !v.enabled(l) {
		parent, _ := l.Parent()
		return v.styles.Muted.Render(fmt.Sprintf("select %s first", strings.ToLower(parent.Label())))
	}
	return v.styles.Muted.Render("Select " + strings.ToLower(l.Label()))
}

func (v *View) renderPicker(l domain.Level) string {
	var b strings.Builder
	indent := strings.Repeat(" ", 4)

	switch {
	case v.state.Form.IsLoading(l):
		b.WriteString(indent + v.spinner.View() + " " + v.styles.Muted.Render("Loading options..."))
		b.WriteString("\n")
		return b.String()
	case len(v.picker.Items()) == 0:
		b.WriteString(indent + v.styles.Muted.Render("No options found. Try another "+
			strings.ToLower(parentLabel(l))+"."))
		b.WriteString("\n")
		return b.String()
	}

	if f := v.picker.Filter(); f != "" {
		b.WriteString(indent + v.styles.Muted.Render("filter: ") + v.styles.Normal.Render(f))
		b.WriteString("\n")
	}
	for _, line := range strings.Split(v.picker.View(), "\n") {
		b.WriteString(indent + line + "\n")
	}
	return b.String()
}

func parentLabel(l domain.Level) string {
	if parent, ok := l.Parent(); ok {
		return parent.Label()
	}
	return "search"
}
