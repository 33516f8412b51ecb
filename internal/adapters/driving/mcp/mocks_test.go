package mcp

import (
	"context"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// mockLookupService implements driving.LookupService for testing.
type mockLookupService struct {
	result      *domain.SearchResult
	err         error
	items       []string
	suggestions []string

	lastQuery   string
	lastLevel   domain.Level
	lastParent  domain.LocationContext
	lastPartial string
}

func (m *mockLookupService) Lookup(_ context.Context, query string) (*domain.SearchResult, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.SearchResult{Query: query, Text: "560034"}, nil
}

func (m *mockLookupService) ListLocations(_ context.Context, level domain.Level, parent domain.LocationContext) []string {
	m.lastLevel = level
	m.lastParent = parent
	return m.items
}

func (m *mockLookupService) QuickSuggestions(_ context.Context, partial string) []string {
	m.lastPartial = partial
	return m.suggestions
}
