package session

import (
	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// Form is the detailed-search form: the cascading selection, the active
// sub-mode and one candidate list per level.
//
// Form is a value. Every setter returns the updated copy and, when the
// change needs new candidates, the fetch to perform.
type Form struct {
	Selection domain.LocationSelection
	SubMode   domain.SubMode

	// Lists holds the candidates offered for each level.
	Lists [domain.NumLevels][]string

	// Loading is true while a fetch for the level is outstanding.
	Loading [domain.NumLevels]bool

	// Seq is the latest request number issued per level. Responses that
	// carry an older number are stale and dropped.
	Seq [domain.NumLevels]uint64
}

// NewForm returns an empty form in the default sub-mode. The country
// list is static and filled up front.
func NewForm() Form {
	f := Form{SubMode: domain.DefaultSubMode}
	f.Lists[domain.LevelCountry] = domain.CommonCountries()
	return f
}

// FetchLocations asks for the candidates of one level.
type FetchLocations struct {
	Level   domain.Level
	Context domain.LocationContext
	Seq     uint64
}

func (FetchLocations) isEffect() {}

// SetCountry selects a country and fetches its states.
func (f Form) SetCountry(value string) (Form, *FetchLocations) {
	return f.Set(domain.LevelCountry, value)
}

// SetState selects a state and fetches its cities.
func (f Form) SetState(value string) (Form, *FetchLocations) {
	return f.Set(domain.LevelState, value)
}

// SetCity selects a city and fetches areas or mandals depending on the
// current sub-mode.
func (f Form) SetCity(value string) (Form, *FetchLocations) {
	return f.Set(domain.LevelCity, value)
}

// SetArea selects an area. Areas are leaves.
func (f Form) SetArea(value string) (Form, *FetchLocations) {
	return f.Set(domain.LevelArea, value)
}

// SetMandal selects a mandal and fetches its villages.
func (f Form) SetMandal(value string) (Form, *FetchLocations) {
	return f.Set(domain.LevelMandal, value)
}

// SetVillage selects a village. Villages are leaves.
func (f Form) SetVillage(value string) (Form, *FetchLocations) {
	return f.Set(domain.LevelVillage, value)
}

// Set selects value for level, clears every descendant value and list,
// and returns the fetch for the next level down when value is non-empty.
// Setting a level whose ancestors are unset changes nothing.
func (f Form) Set(level domain.Level, value string) (Form, *FetchLocations) {
	if !level.IsValid() {
		return f, nil
	}
	sel := f.Selection.With(level, value)
	if sel.Get(level) != value {
		return f, nil
	}

	f.Selection = sel
	for _, d := range level.Descendants() {
		f = f.clearList(d)
	}
	if value == "" {
		return f, nil
	}

	next, ok := f.childOf(level)
	if !ok {
		return f, nil
	}
	return f.fetch(next)
}

// SetSubMode switches between the area and mandal branches. The branch
// values are always cleared; when a city is already chosen the newly
// relevant list is fetched.
func (f Form) SetSubMode(mode domain.SubMode) (Form, *FetchLocations) {
	if !mode.IsValid() {
		return f, nil
	}

	f.SubMode = mode
	f.Selection = f.Selection.Clear(domain.LevelArea, domain.LevelMandal, domain.LevelVillage)
	for _, l := range []domain.Level{domain.LevelArea, domain.LevelMandal, domain.LevelVillage} {
		f = f.clearList(l)
	}

	if f.Selection.City == "" {
		return f, nil
	}
	return f.fetch(mode.Branch())
}

// ApplyLocations stores a fetch result. It reports false, leaving the form
// unchanged, when a newer request for the level was issued or the level
// was cleared after the request went out.
func (f Form) ApplyLocations(msg LocationsLoaded) (Form, bool) {
	l := msg.Level
	if !l.IsValid() || msg.Seq != f.Seq[l] || !f.Loading[l] {
		return f, false
	}

	items := msg.Items
	if items == nil {
		items = []string{}
	}
	f.Lists[l] = items
	f.Loading[l] = false
	return f, true
}

// List returns the candidates for level.
func (f Form) List(level domain.Level) []string {
	if !level.IsValid() {
		return nil
	}
	return f.Lists[level]
}

// IsLoading reports whether candidates for level are being fetched.
func (f Form) IsLoading(level domain.Level) bool {
	return level.IsValid() && f.Loading[level]
}

// Valid reports whether the form holds a complete selection for its sub-mode.
func (f Form) Valid() bool {
	return f.Selection.Valid(f.SubMode)
}

// Query builds the lookup for a complete form.
func (f Form) Query() (string, bool) {
	return f.Selection.Query(f.SubMode)
}

// Levels returns the levels shown for the current sub-mode.
func (f Form) Levels() []domain.Level {
	return f.SubMode.Levels()
}

// Reset empties the form and returns to the default sub-mode. Sequence
// numbers advance so that responses still in flight are dropped.
func (f Form) Reset() Form {
	next := NewForm()
	next.Seq = f.Seq
	for l := range next.Seq {
		next.Seq[l]++
	}
	return next
}

func (f Form) childOf(level domain.Level) (domain.Level, bool) {
	switch level {
	case domain.LevelCountry:
		return domain.LevelState, true
	case domain.LevelState:
		return domain.LevelCity, true
	case domain.LevelCity:
		return f.SubMode.Branch(), true
	case domain.LevelMandal:
		return domain.LevelVillage, true
	default:
		return 0, false
	}
}

func (f Form) fetch(level domain.Level) (Form, *FetchLocations) {
	f.Seq[level]++
	f.Loading[level] = true
	f.Lists[level] = nil
	return f, &FetchLocations{
		Level:   level,
		Context: f.Selection.ContextFor(level),
		Seq:     f.Seq[level],
	}
}

// clearList empties a level's candidates and invalidates any fetch for it.
func (f Form) clearList(level domain.Level) Form {
	if f.Loading[level] {
		f.Seq[level]++
		f.Loading[level] = false
	}
	f.Lists[level] = nil
	return f
}

// FormFor fills a form from a complete or partial selection. A mandal or
// village selects the mandal branch. Values are applied top down, so a
// value whose ancestors are missing is dropped.
func FormFor(sel domain.LocationSelection) Form {
	mode := domain.SubModeArea
	if sel.Mandal != "" || sel.Village != "" {
		mode = domain.SubModeMandal
	}

	f, _ := NewForm().SetSubMode(mode)
	for _, l := range f.Levels() {
		f, _ = f.Set(l, sel.Get(l))
	}
	return f
}

// Missing returns the levels still needed for a valid query, outermost first.
func (f Form) Missing() []domain.Level {
	var missing []domain.Level
	for _, l := range f.Levels() {
		if f.Selection.Get(l) == "" {
			missing = append(missing, l)
		}
	}
	return missing
}
