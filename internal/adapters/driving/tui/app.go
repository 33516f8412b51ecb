package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/keymap"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/messages"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/styles"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/views/menu"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/views/search"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/views/settings"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/session"
	"github.com/worldpincode/pincode-cli/internal/logger"
)

// eventBuffer bounds how many settled effects may queue before the UI
// picks them up.
const eventBuffer = 32

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The session state lives here. Views dispatch events into apply, which
// runs session.Update, hands the requested effects to the runner and
// pushes the new state back into the search view. Effects settle on
// background goroutines and return through the events channel.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	state  session.State
	runner *session.Runner
	events chan session.Event
	done   chan struct{}
	once   sync.Once

	menuView     *menu.View
	searchView   *search.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	return newApp(ports, session.RealClock)
}

func newApp(ports *Ports, clock session.Clock) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	cfg := ports.Autocomplete
	if cfg.Debounce <= 0 {
		cfg.Debounce = domain.DefaultDebounce
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        help.New(),
		state:       session.NewState(cfg),
		events:      make(chan session.Event, eventBuffer),
		done:        make(chan struct{}),
		menuView:    menu.NewView(s),
		currentView: messages.ViewMenu,
	}
	a.runner = session.NewRunner(ports.Lookup, session.NewDebouncer(cfg.Debounce, clock), a.emit)
	a.searchView = search.NewView(s, km, a.apply)
	a.searchView.SetState(a.state)
	a.settingsView = settings.NewView(s, ports.Settings)

	return a, nil
}

// WithContext sets the context for the app. Cancelling it quits.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("pincode - "+domain.AppTitle),
		a.waitForEvent(),
	)
}

// emit queues a settled effect. It gives up once the app is closed.
func (a *App) emit(ev session.Event) {
	select {
	case a.events <- ev:
	case <-a.done:
	}
}

// waitForEvent delivers the next settled effect as a message.
func (a *App) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-a.events:
			return messages.EffectSettled{Event: ev}
		case <-a.ctx.Done():
			return messages.Quit{}
		case <-a.done:
			return nil
		}
	}
}

// apply runs one event through the session state machine.
func (a *App) apply(ev session.Event) {
	st, effects := session.Update(a.state, ev)
	a.state = st
	a.searchView.SetState(st)
	if len(effects) > 0 {
		logger.Debug("Event %T requested %d effects", ev, len(effects))
		a.runner.Dispatch(effects)
	}
}

// Close stops background work. It is safe to call more than once.
func (a *App) Close() {
	a.once.Do(func() {
		close(a.done)
		a.runner.Close()
	})
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case messages.EffectSettled:
		a.apply(msg.Event)
		return a, a.waitForEvent()

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			if msg.Mode != "" {
				a.apply(session.ModeSwitched{Mode: msg.Mode})
			}
			return a, a.searchView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case messages.SettingsLoaded, messages.SettingsSaved, messages.SettingsValidated:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	// Spinner ticks and cursor blinks belong to the search view whichever
	// view is showing, so its animations keep their tick chains alive.
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Normal.Render(
		"Quick Search: type a place, address or code. Suggestions appear after a few characters."))
	b.WriteString("\n")
	b.WriteString(a.styles.Normal.Render(
		"Detailed Search: choose country, state and district, then an area or a mandal and village."))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application and stops background work on exit.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// State returns the current session state.
func (a *App) State() session.State {
	return a.state
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
