package domain

import "fmt"

// Level identifies one tier of the location hierarchy.
// The order of the constants is the hierarchy order.
type Level int

// Hierarchy levels, outermost first.
const (
	LevelCountry Level = iota
	LevelState
	LevelCity
	LevelArea
	LevelMandal
	LevelVillage
)

// NumLevels is the number of hierarchy levels.
const NumLevels = 6

var levelNames = [NumLevels]string{"country", "state", "city", "area", "mandal", "village"}

// String returns the lower-case level name.
func (l Level) String() string {
	if !l.IsValid() {
		return "unknown"
	}
	return levelNames[l]
}

// Label returns the human-facing field label.
// Cities are presented as districts, mandals as mandal/tehsil.
func (l Level) Label() string {
	switch l {
	case LevelCountry:
		return "Country"
	case LevelState:
		return "State / Province"
	case LevelCity:
		return "District / City"
	case LevelArea:
		return "Area / Locality"
	case LevelMandal:
		return "Mandal / Tehsil"
	case LevelVillage:
		return "Village / Post Office"
	default:
		return unknownDescription
	}
}

// IsValid returns true if the level is one of the six known levels.
func (l Level) IsValid() bool {
	return l >= LevelCountry && l <= LevelVillage
}

// Parent returns the level directly above l.
// Area and mandal both hang off city; country has no parent.
func (l Level) Parent() (Level, bool) {
	switch l {
	case LevelState:
		return LevelCountry, true
	case LevelCity:
		return LevelState, true
	case LevelArea, LevelMandal:
		return LevelCity, true
	case LevelVillage:
		return LevelMandal, true
	default:
		return 0, false
	}
}

// Ancestors returns every level above l, outermost first.
func (l Level) Ancestors() []Level {
	var chain []Level
	for p, ok := l.Parent(); ok; p, ok = p.Parent() {
		chain = append([]Level{p}, chain...)
	}
	return chain
}

// Descendants returns every level that must be cleared when l changes.
func (l Level) Descendants() []Level {
	switch l {
	case LevelCountry:
		return []Level{LevelState, LevelCity, LevelArea, LevelMandal, LevelVillage}
	case LevelState:
		return []Level{LevelCity, LevelArea, LevelMandal, LevelVillage}
	case LevelCity:
		return []Level{LevelArea, LevelMandal, LevelVillage}
	case LevelMandal:
		return []Level{LevelVillage}
	default:
		return nil
	}
}

// ParseLevel converts a level name into a Level.
// "district" is accepted as an alias for city.
func ParseLevel(s string) (Level, error) {
	if s == "district" {
		return LevelCity, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// AllLevels returns the six levels in hierarchy order.
func AllLevels() []Level {
	return []Level{LevelCountry, LevelState, LevelCity, LevelArea, LevelMandal, LevelVillage}
}

// SubMode selects which branch below city a detailed query uses.
type SubMode string

// Available sub-modes.
const (
	// SubModeArea queries by locality within a district.
	SubModeArea SubMode = "area"

	// SubModeMandal queries by village within a mandal/tehsil.
	SubModeMandal SubMode = "mandal"
)

// DefaultSubMode is the sub-mode used on entry and after reset.
const DefaultSubMode = SubModeArea

// IsValid returns true if the sub-mode is recognised.
func (m SubMode) IsValid() bool {
	return m == SubModeArea || m == SubModeMandal
}

// String returns the string representation.
func (m SubMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the sub-mode.
func (m SubMode) Description() string {
	switch m {
	case SubModeArea:
		return "Area / Locality"
	case SubModeMandal:
		return "Mandal / Village"
	default:
		return unknownDescription
	}
}

// Levels returns the levels that must all be set for a query in this mode.
func (m SubMode) Levels() []Level {
	switch m {
	case SubModeArea:
		return []Level{LevelCountry, LevelState, LevelCity, LevelArea}
	case SubModeMandal:
		return []Level{LevelCountry, LevelState, LevelCity, LevelMandal, LevelVillage}
	default:
		return nil
	}
}

// Branch returns the first level below city that this mode fetches.
func (m SubMode) Branch() Level {
	if m == SubModeMandal {
		return LevelMandal
	}
	return LevelArea
}

// LocationSelection holds the chosen value for every hierarchy level.
// An empty string means the level is unset. A level is only ever set
// while all of its ancestors are set; With enforces this.
type LocationSelection struct {
	Country string
	State   string
	City    string
	Area    string
	Mandal  string
	Village string
}

// Get returns the value selected for a level.
func (s LocationSelection) Get(l Level) string {
	switch l {
	case LevelCountry:
		return s.Country
	case LevelState:
		return s.State
	case LevelCity:
		return s.City
	case LevelArea:
		return s.Area
	case LevelMandal:
		return s.Mandal
	case LevelVillage:
		return s.Village
	default:
		return ""
	}
}

// With returns a copy with level l set to value and every descendant cleared.
// Setting a level whose ancestors are not all set leaves the selection unchanged.
func (s LocationSelection) With(l Level, value string) LocationSelection {
	if !l.IsValid() {
		return s
	}
	if value != "" {
		for _, a := range l.Ancestors() {
			if s.Get(a) == "" {
				return s
			}
		}
	}
	s = s.set(l, value)
	for _, d := range l.Descendants() {
		s = s.set(d, "")
	}
	return s
}

// Clear returns a copy with the given levels emptied.
func (s LocationSelection) Clear(levels ...Level) LocationSelection {
	for _, l := range levels {
		s = s.set(l, "")
	}
	return s
}

func (s LocationSelection) set(l Level, value string) LocationSelection {
	switch l {
	case LevelCountry:
		s.Country = value
	case LevelState:
		s.State = value
	case LevelCity:
		s.City = value
	case LevelArea:
		s.Area = value
	case LevelMandal:
		s.Mandal = value
	case LevelVillage:
		s.Village = value
	}
	return s
}

// IsEmpty returns true if no level is set.
func (s LocationSelection) IsEmpty() bool {
	return s == LocationSelection{}
}

// Consistent reports whether every set level has all of its ancestors set.
func (s LocationSelection) Consistent() bool {
	for _, l := range AllLevels() {
		if s.Get(l) == "" {
			continue
		}
		for _, a := range l.Ancestors() {
			if s.Get(a) == "" {
				return false
			}
		}
	}
	return true
}

// Valid reports whether the selection is complete for the given sub-mode.
func (s LocationSelection) Valid(mode SubMode) bool {
	levels := mode.Levels()
	if len(levels) == 0 {
		return false
	}
	for _, l := range levels {
		if s.Get(l) == "" {
			return false
		}
	}
	return true
}

// Query builds the natural-language lookup for a complete selection.
// The second return value is false when the selection is not valid for mode.
func (s LocationSelection) Query(mode SubMode) (string, bool) {
	if !s.Valid(mode) {
		return "", false
	}
	switch mode {
	case SubModeArea:
		return fmt.Sprintf("Postal code for %s, %s District, %s, %s",
			s.Area, s.City, s.State, s.Country), true
	case SubModeMandal:
		return fmt.Sprintf("Postal code for %s, %s Mandal/Tehsil, %s District, %s, %s",
			s.Village, s.Mandal, s.City, s.State, s.Country), true
	default:
		return "", false
	}
}

// ContextFor returns the ancestor values needed to list candidates for level l.
func (s LocationSelection) ContextFor(l Level) LocationContext {
	var ctx LocationContext
	for _, a := range l.Ancestors() {
		switch a {
		case LevelCountry:
			ctx.Country = s.Country
		case LevelState:
			ctx.State = s.State
		case LevelCity:
			ctx.City = s.City
		case LevelMandal:
			ctx.Mandal = s.Mandal
		}
	}
	return ctx
}

// LocationContext is the partial hierarchy that scopes a candidate listing.
type LocationContext struct {
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
	Mandal  string `json:"mandal,omitempty"`
}

// Satisfies reports whether the context carries every ancestor level l needs.
func (c LocationContext) Satisfies(l Level) bool {
	for _, a := range l.Ancestors() {
		var v string
		switch a {
		case LevelCountry:
			v = c.Country
		case LevelState:
			v = c.State
		case LevelCity:
			v = c.City
		case LevelMandal:
			v = c.Mandal
		}
		if v == "" {
			return false
		}
	}
	return true
}
