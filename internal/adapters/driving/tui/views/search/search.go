// Package search provides the quick and detailed search view for the TUI.
// The view owns only cursor and focus state. Everything it shows comes
// from the session.State pushed in through SetState, and every user
// intent leaves through the dispatch function as a session.Event.
package search

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/components/answer"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/components/input"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/components/list"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/components/status"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/keymap"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/messages"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/styles"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/session"
)

// Dispatch applies an event to the session and pushes the new state back
// through SetState before returning.
type Dispatch func(session.Event)

type focus int

const (
	focusQuery focus = iota
	focusForm
	focusResult
)

// dropdownKind says what the quick-search dropdown is listing.
type dropdownKind int

const (
	dropdownNone dropdownKind = iota
	dropdownExamples
	dropdownSuggestions
)

// View represents the search view with query box or form, results and
// status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	dropdown  *list.Options
	picker    *list.Options
	answer    *answer.Panel
	viewport  viewport.Model
	spinner   spinner.Model
	statusbar *status.Bar

	dispatch Dispatch
	state    session.State

	focus        focus
	dropdownKind dropdownKind
	field        int
	pickerOpen   bool
	pickerLevel  domain.Level
	shownResult  *domain.SearchResult

	width  int
	height int
	ready  bool
}

// NewView creates a new search view. A nil dispatch drops events.
func NewView(s *styles.Styles, km *keymap.KeyMap, dispatch Dispatch) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if dispatch == nil {
		dispatch = func(session.Event) {}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQueryInput(s),
		dropdown:  list.NewOptions(s, 6),
		picker:    list.NewOptions(s, 8),
		answer:    answer.NewPanel(s, 76),
		viewport:  viewport.New(80, 10),
		spinner:   sp,
		statusbar: status.NewBar(s, km),
		dispatch:  dispatch,
		state:     session.NewState(domain.AutocompleteSettings{}),
		width:     80,
		height:    24,
	}
	v.syncDropdown()
	return v
}

// Init focuses the active control and starts the spinner.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.focusMode(), v.spinner.Tick)
}

// SetState replaces the displayed session state.
func (v *View) SetState(st session.State) {
	prev := v.state
	v.state = st

	if st.Epoch != prev.Epoch || st.Mode != prev.Mode {
		v.field = 0
		v.closePicker()
		v.focusMode()
	}
	if v.input.Value() != st.Session.Query {
		v.input.SetValue(st.Session.Query)
	}

	v.syncDropdown()
	v.syncPicker()
	v.clampField()
	v.syncResult()
	v.syncStatus()
}

// State returns the displayed session state.
func (v *View) State() session.State {
	return v.state
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.focus == focusQuery {
		var cmd tea.Cmd
		v.input, cmd, _ = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.SwitchMode) {
		next := domain.SearchModeDetailed
		if v.state.Mode == domain.SearchModeDetailed {
			next = domain.SearchModeQuick
		}
		v.dispatch(session.ModeSwitched{Mode: next})
		return v, nil
	}

	switch v.focus {
	case focusForm:
		return v.handleFormKey(msg)
	case focusResult:
		return v.handleResultKey(msg)
	default:
		return v.handleQueryKey(msg)
	}
}

func (v *View) handleResultKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, backToMenu
	case keymap.Matches(keyStr, v.keymap.Retry):
		if v.state.Session.Failed() && !v.state.Session.Loading() {
			v.dispatch(session.RetryRequested{})
		}
		return v, nil
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.dispatch(session.ResetRequested{})
		return v, v.focusMode()
	case keymap.Matches(keyStr, v.keymap.Edit):
		return v, v.focusMode()
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// focusMode moves focus to the query box or the form.
func (v *View) focusMode() tea.Cmd {
	if v.state.Mode == domain.SearchModeDetailed {
		v.focus = focusForm
		v.input.Blur()
		return nil
	}
	v.focus = focusQuery
	return v.input.Focus()
}

func (v *View) focusResult() {
	v.focus = focusResult
	v.input.Blur()
	v.closePicker()
}

func backToMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

// syncResult loads a newly settled result into the viewport.
func (v *View) syncResult() {
	result := v.state.Session.Result
	if result == v.shownResult {
		return
	}
	v.shownResult = result
	v.viewport.SetContent(v.answer.Render(result))
	v.viewport.GotoTop()
}

func (v *View) syncStatus() {
	sess := v.state.Session
	switch {
	case sess.Loading():
		v.statusbar.SetState(status.StateSearching)
		v.statusbar.SetMessage(fmt.Sprintf("Searching for %q...", truncate(sess.Query, 40)))
	case sess.Failed():
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("search failed")
	case sess.Result != nil:
		v.statusbar.SetState(status.StateResult)
		v.statusbar.SetMessage(sourceCount(len(sess.Result.WebSources())))
	default:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
	}

	switch {
	case v.focus == focusResult:
		v.statusbar.SetHints(v.keymap.ResultsHelp())
	case v.focus == focusForm:
		v.statusbar.SetHints(v.keymap.FormHelp())
	default:
		v.statusbar.SetHints(nil)
	}
}

func sourceCount(n int) string {
	switch n {
	case 0:
		return "No web sources"
	case 1:
		return "1 source"
	default:
		return fmt.Sprintf("%d sources", n)
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var top strings.Builder
	top.WriteString(v.styles.Title.Render(domain.AppTitle))
	top.WriteString("  ")
	top.WriteString(v.styles.Muted.Render(domain.AppDescription))
	top.WriteString("\n\n")
	top.WriteString(v.renderTabs())
	top.WriteString("\n\n")

	if v.state.Mode == domain.SearchModeDetailed {
		top.WriteString(v.renderForm())
	} else {
		top.WriteString(v.renderQuick())
	}

	body := v.renderOutcome(lipgloss.Height(top.String()))

	return lipgloss.JoinVertical(lipgloss.Left,
		top.String(),
		body,
		v.statusbar.View(),
	)
}

func (v *View) renderTabs() string {
	tab := func(mode domain.SearchMode) string {
		if v.state.Mode == mode {
			return v.styles.TabActive.Render(mode.Description())
		}
		return v.styles.TabInactive.Render(mode.Description())
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center,
		tab(domain.SearchModeQuick),
		" ",
		tab(domain.SearchModeDetailed),
		"  ",
		v.styles.Help.Render("ctrl+t to switch"),
	)
}

// renderOutcome shows progress, the error or the answer below the inputs.
func (v *View) renderOutcome(used int) string {
	sess := v.state.Session
	if !sess.HasSearched {
		return ""
	}

	switch {
	case sess.Loading():
		return "\n" + v.spinner.View() + " " + v.styles.Muted.Render("Searching for postal codes...")

	case sess.Failed():
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(sess.Error))
		b.WriteString("\n")
		if sess.ConfigError {
			b.WriteString(v.styles.Muted.Render(
				"Open Settings from the menu or run 'pincode settings llm' to configure your provider."))
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Help.Render("[r] retry  [n] new search  [e] edit"))
		return b.String()

	case sess.Result != nil:
		height := v.height - used - 3
		if height < 3 {
			height = 3
		}
		v.viewport.Height = height
		return "\n" + v.viewport.View()
	}
	return ""
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(min(width, 100))
	v.dropdown.SetWidth(min(width, 100))
	v.picker.SetWidth(min(width-20, 80))
	v.statusbar.SetWidth(width)

	v.viewport.Width = width
	v.answer.SetWidth(width - 2)
	if v.shownResult != nil {
		v.viewport.SetContent(v.answer.Render(v.shownResult))
	}
}

// Query returns the text in the query box.
func (v *View) Query() string {
	return v.input.Value()
}

// Focus reports which control has focus: "query", "form" or "result".
func (v *View) Focus() string {
	switch v.focus {
	case focusForm:
		return "form"
	case focusResult:
		return "result"
	default:
		return "query"
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// sameItems reports whether two lists hold the same entries.
func sameItems(a, b []string) bool {
	return slices.Equal(a, b)
}
