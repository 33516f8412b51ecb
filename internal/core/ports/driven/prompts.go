package driven

import "github.com/worldpincode/pincode-cli/internal/core/domain"

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names return an error.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names. Templates use text/template syntax and are
// executed with a PromptData value.
const (
	// PromptLookup asks for the postal code of a free-text query.
	PromptLookup = "lookup"

	// PromptListStates lists states and union territories of {{.Country}}.
	PromptListStates = "list_states"

	// PromptListCities lists districts or major cities of {{.State}}.
	PromptListCities = "list_cities"

	// PromptListAreas lists localities within {{.City}}.
	PromptListAreas = "list_areas"

	// PromptListMandals lists mandals, tehsils or taluks of {{.City}}.
	PromptListMandals = "list_mandals"

	// PromptListVillages lists villages or post offices in {{.Mandal}}.
	PromptListVillages = "list_villages"

	// PromptSuggest proposes completions for a partial query.
	PromptSuggest = "suggest"
)

// PromptData is the value templates are executed against.
type PromptData struct {
	Query   string
	Country string
	State   string
	City    string
	Mandal  string
	Limit   int
}

// ListPromptFor returns the prompt name used to list candidates for a level.
// Country has no prompt; the country list is fixed.
func ListPromptFor(level domain.Level) (string, bool) {
	switch level {
	case domain.LevelState:
		return PromptListStates, true
	case domain.LevelCity:
		return PromptListCities, true
	case domain.LevelArea:
		return PromptListAreas, true
	case domain.LevelMandal:
		return PromptListMandals, true
	case domain.LevelVillage:
		return PromptListVillages, true
	default:
		return "", false
	}
}

// AllPromptNames returns every prompt name the application loads.
func AllPromptNames() []string {
	return []string{
		PromptLookup,
		PromptListStates,
		PromptListCities,
		PromptListAreas,
		PromptListMandals,
		PromptListVillages,
		PromptSuggest,
	}
}
