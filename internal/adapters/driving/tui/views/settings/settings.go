// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/messages"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/styles"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
	keyUp    = "up"
)

const apiKeySetting = "llm.api_key"

// View is the settings configuration view. Rows are the keys the
// settings service accepts; enter edits the selected row.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	keys     []string
	err      error
	notice   string

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 256

	v := &View{
		styles:          s,
		settingsService: settingsService,
		input:           ti,
	}
	if settingsService != nil {
		v.keys = settingsService.Keys()
	}
	return v
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// Reset leaves edit mode and clears messages.
func (v *View) Reset() {
	v.editing = false
	v.input.Blur()
	v.err = nil
	v.notice = ""
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

func (v *View) validate() tea.Cmd {
	return func() tea.Msg {
		if err := v.settingsService.Validate(); err != nil {
			return messages.SettingsValidated{Err: err}
		}
		return messages.SettingsValidated{Err: v.settingsService.ValidateLLMConfig()}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Saved %s. Restart pincode to apply.", msg.Key)
		return v, v.loadSettings()

	case messages.SettingsValidated:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
		} else {
			v.err = nil
			v.notice = "Provider configuration is valid."
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		return v.handleEditKey(msg)
	}

	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil || len(v.keys) == 0 {
			return v, nil
		}
		key := v.keys[v.selected]
		v.editing = true
		v.notice = ""
		v.err = nil
		v.input.EchoMode = textinput.EchoNormal
		v.input.Placeholder = ""
		if key == apiKeySetting {
			v.input.EchoMode = textinput.EchoPassword
			v.input.Placeholder = "Enter API key"
			v.input.SetValue("")
		} else {
			v.input.SetValue(valueFor(v.settings, key))
			v.input.CursorEnd()
		}
		return v, v.input.Focus()
	case "v":
		if v.settingsService == nil {
			return v, nil
		}
		v.notice = "Checking provider..."
		return v, v.validate()
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	case keyEnter:
		v.editing = false
		v.input.Blur()
		return v, v.saveSetting(v.keys[v.selected], v.input.Value())
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(v.err.Error()))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	if !v.settings.LLM.IsConfigured() {
		b.WriteString(v.styles.Warning.Render(
			"No AI provider configured. Set llm.api_key or run 'pincode settings llm'."))
		b.WriteString("\n\n")
	}

	for i, key := range v.keys {
		cursor := "  "
		label := v.styles.Label.Width(32).Render(key)
		if i == v.selected {
			cursor = "> "
			label = v.styles.Subtitle.Width(32).Render(key)
		}
		b.WriteString(cursor + label)
		if v.editing && i == v.selected {
			b.WriteString(v.styles.FocusedField.Render(v.input.View()))
		} else {
			b.WriteString(v.styles.Normal.Render(valueFor(v.settings, key)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(domain.UserMessage(v.err)))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] edit  [v] validate provider  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.Width = max(width-40, 20)
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// valueFor formats the current value of key for display.
func valueFor(s *domain.AppSettings, key string) string {
	switch key {
	case "llm.provider":
		return string(s.LLM.Provider)
	case "llm.model":
		return s.LLM.Model
	case "llm.lite_model":
		return s.LLM.LiteModel
	case "llm.base_url":
		return s.LLM.BaseURL
	case apiKeySetting:
		return maskAPIKey(s.LLM.APIKey)
	case "llm.google_search":
		return strconv.FormatBool(s.LLM.GoogleSearch)
	case "autocomplete.debounce":
		return s.Autocomplete.Debounce.String()
	case "autocomplete.min_chars":
		return strconv.Itoa(s.Autocomplete.MinChars)
	case "autocomplete.max_suggestions":
		return strconv.Itoa(s.Autocomplete.MaxSuggestions)
	case "rate_limit.rps":
		return strconv.FormatFloat(s.RateLimit.RequestsPerSecond, 'g', -1, 64)
	case "rate_limit.burst":
		return strconv.Itoa(s.RateLimit.Burst)
	default:
		return ""
	}
}

func maskAPIKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 8:
		return "****"
	default:
		return key[:4] + "..." + key[len(key)-4:]
	}
}
