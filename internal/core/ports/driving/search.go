package driving

import (
	"context"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// PostcodeService answers free-text postal-code lookups.
type PostcodeService interface {
	// Lookup asks the model for the postal code of query.
	// A blank query returns domain.ErrEmptyQuery. Provider failures are
	// classified as domain.ErrConfiguration or domain.ErrTransient.
	Lookup(ctx context.Context, query string) (*domain.SearchResult, error)
}

// LocationService lists candidate values for one level of the location hierarchy.
type LocationService interface {
	// ListLocations returns candidates for level given its ancestors.
	// Failures of any kind yield an empty list, never an error. Country
	// returns the fixed country catalogue.
	ListLocations(ctx context.Context, level domain.Level, parent domain.LocationContext) []string
}

// SuggestionService proposes completions for a partially typed query.
type SuggestionService interface {
	// QuickSuggestions returns at most the configured number of suggestions.
	// Failures yield an empty list.
	QuickSuggestions(ctx context.Context, partial string) []string
}

// LookupService bundles every lookup capability the driving adapters use.
type LookupService interface {
	PostcodeService
	LocationService
	SuggestionService
}
