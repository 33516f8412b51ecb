package session

import (
	"strings"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// Session is the main search and the quick-search autocomplete.
type Session struct {
	// Query is the text in the quick-search box, or the last query built
	// from the detailed form. Retry resubmits it.
	Query string

	// HasSearched is set by the first submit and cleared by reset.
	HasSearched bool

	// Pending counts searches that have not settled yet.
	Pending int

	Result *domain.SearchResult

	// Error is the message of the last failed search.
	Error string

	// ConfigError is set when Error is a configuration problem.
	ConfigError bool

	Suggestions     []string
	ShowSuggestions bool
}

// Loading reports whether a search is outstanding.
func (s Session) Loading() bool {
	return s.Pending > 0
}

// Failed reports whether the last settled search failed.
func (s Session) Failed() bool {
	return s.Error != ""
}

// State is everything the interactive views display.
type State struct {
	Mode    domain.SearchMode
	Form    Form
	Session Session

	// MinChars is the shortest partial query that triggers autocomplete.
	MinChars int

	// Epoch advances on every reset. Searches started in an earlier
	// epoch no longer affect the session when they settle.
	Epoch uint64
}

// NewState returns the initial state.
func NewState(cfg domain.AutocompleteSettings) State {
	minChars := cfg.MinChars
	if minChars < 1 {
		minChars = domain.DefaultMinChars
	}
	return State{
		Mode:     domain.SearchModeQuick,
		Form:     NewForm(),
		MinChars: minChars,
	}
}

// Event is an input to Update.
type Event interface {
	isEvent()
}

// Effect is work requested by Update.
type Effect interface {
	isEffect()
}

// QueryTyped is an edit of the quick-search box.
type QueryTyped struct{ Text string }

// SearchSubmitted submits a free-text query.
type SearchSubmitted struct{ Query string }

// DetailedSubmitted submits the detailed form.
type DetailedSubmitted struct{}

// SuggestionChosen picks an autocomplete entry or a suggested query.
// It switches to quick mode and searches for Text.
type SuggestionChosen struct{ Text string }

// RetryRequested resubmits the stored query.
type RetryRequested struct{}

// ResetRequested starts over.
type ResetRequested struct{}

// ModeSwitched changes between quick and detailed search.
type ModeSwitched struct{ Mode domain.SearchMode }

// LocationSet selects a value on the detailed form.
type LocationSet struct {
	Level domain.Level
	Value string
}

// SubModeSwitched toggles the area and mandal branches.
type SubModeSwitched struct{ Mode domain.SubMode }

// SuggestionsDismissed hides the autocomplete dropdown.
type SuggestionsDismissed struct{}

// LocationsLoaded delivers a FetchLocations result.
type LocationsLoaded struct {
	Level domain.Level
	Seq   uint64
	Items []string
}

// SearchFinished delivers a RunSearch outcome. Exactly one of Result and
// Err is set.
type SearchFinished struct {
	Epoch  uint64
	Query  string
	Result *domain.SearchResult
	Err    error
}

// SuggestionsLoaded delivers autocomplete candidates for Partial.
type SuggestionsLoaded struct {
	Partial string
	Items   []string
}

func (QueryTyped) isEvent()           {}
func (SearchSubmitted) isEvent()      {}
func (DetailedSubmitted) isEvent()    {}
func (SuggestionChosen) isEvent()     {}
func (RetryRequested) isEvent()       {}
func (ResetRequested) isEvent()       {}
func (ModeSwitched) isEvent()         {}
func (LocationSet) isEvent()          {}
func (SubModeSwitched) isEvent()      {}
func (SuggestionsDismissed) isEvent() {}
func (LocationsLoaded) isEvent()      {}
func (SearchFinished) isEvent()       {}
func (SuggestionsLoaded) isEvent()    {}

// RunSearch looks up Query. Epoch is echoed back in SearchFinished.
type RunSearch struct {
	Epoch uint64
	Query string
}

// ScheduleAutocomplete arms the debouncer for Partial, replacing any
// pending request.
type ScheduleAutocomplete struct{ Partial string }

// CancelAutocomplete drops any pending autocomplete request.
type CancelAutocomplete struct{}

func (RunSearch) isEffect()            {}
func (ScheduleAutocomplete) isEffect() {}
func (CancelAutocomplete) isEffect()   {}

// Update applies ev to st.
func Update(st State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case QueryTyped:
		return st.typed(ev.Text)
	case SearchSubmitted:
		return st.submit(ev.Query)
	case DetailedSubmitted:
		q, ok := st.Form.Query()
		if !ok {
			return st, nil
		}
		return st.submit(q)
	case SuggestionChosen:
		st.Mode = domain.SearchModeQuick
		return st.submit(ev.Text)
	case RetryRequested:
		return st.submit(st.Session.Query)
	case ResetRequested:
		return st.reset()
	case ModeSwitched:
		if ev.Mode != domain.SearchModeQuick && ev.Mode != domain.SearchModeDetailed {
			return st, nil
		}
		st.Mode = ev.Mode
		return st.hideSuggestions()
	case LocationSet:
		form, fetch := st.Form.Set(ev.Level, ev.Value)
		st.Form = form
		return st, fetchEffects(fetch)
	case SubModeSwitched:
		form, fetch := st.Form.SetSubMode(ev.Mode)
		st.Form = form
		return st, fetchEffects(fetch)
	case SuggestionsDismissed:
		return st.hideSuggestions()
	case LocationsLoaded:
		st.Form, _ = st.Form.ApplyLocations(ev)
		return st, nil
	case SearchFinished:
		return st.finish(ev), nil
	case SuggestionsLoaded:
		return st.applySuggestions(ev), nil
	default:
		return st, nil
	}
}

func (st State) autocompleteActive() bool {
	return st.Mode == domain.SearchModeQuick && !st.Session.HasSearched
}

func (st State) typed(text string) (State, []Effect) {
	st.Session.Query = text
	if !st.autocompleteActive() || len([]rune(strings.TrimSpace(text))) < st.MinChars {
		return st.hideSuggestions()
	}
	return st, []Effect{ScheduleAutocomplete{Partial: text}}
}

func (st State) submit(query string) (State, []Effect) {
	if strings.TrimSpace(query) == "" {
		return st, nil
	}

	st.Session.Query = query
	st.Session.HasSearched = true
	st.Session.ShowSuggestions = false
	st.Session.Pending++
	st.Session.Result = nil
	st.Session.Error = ""
	st.Session.ConfigError = false

	return st, []Effect{CancelAutocomplete{}, RunSearch{Epoch: st.Epoch, Query: query}}
}

// finish records a settled search. Whichever search settles last owns
// the visible result.
func (st State) finish(ev SearchFinished) State {
	if ev.Epoch != st.Epoch || st.Session.Pending == 0 {
		return st
	}
	st.Session.Pending--

	if ev.Err != nil {
		st.Session.Result = nil
		st.Session.Error = domain.UserMessage(ev.Err)
		if st.Session.Error == "" {
			st.Session.Error = domain.FallbackMessage
		}
		st.Session.ConfigError = domain.IsConfigurationError(ev.Err)
		return st
	}

	result := ev.Result
	if result == nil {
		result = &domain.SearchResult{Query: ev.Query, Text: domain.NoResultsText}
	}
	st.Session.Result = result
	st.Session.Error = ""
	st.Session.ConfigError = false
	return st
}

func (st State) applySuggestions(ev SuggestionsLoaded) State {
	if !st.autocompleteActive() || ev.Partial != st.Session.Query {
		return st
	}
	if len(ev.Items) == 0 {
		st.Session.ShowSuggestions = false
		return st
	}
	st.Session.Suggestions = ev.Items
	st.Session.ShowSuggestions = true
	return st
}

func (st State) hideSuggestions() (State, []Effect) {
	st.Session.ShowSuggestions = false
	return st, []Effect{CancelAutocomplete{}}
}

func (st State) reset() (State, []Effect) {
	st.Form = st.Form.Reset()
	st.Session = Session{}
	st.Epoch++
	return st, []Effect{CancelAutocomplete{}}
}

func fetchEffects(fetch *FetchLocations) []Effect {
	if fetch == nil {
		return nil
	}
	return []Effect{*fetch}
}
