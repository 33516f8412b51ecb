package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/session"
)

// mockLookupService implements driving.LookupService for testing.
type mockLookupService struct {
	mu          sync.Mutex
	result      *domain.SearchResult
	err         error
	items       []string
	suggestions []string
	queries     []string
	partials    []string
}

func (m *mockLookupService) Lookup(_ context.Context, query string) (*domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.SearchResult{Query: query, Text: "**" + query + "**: 560034"}, nil
}

func (m *mockLookupService) ListLocations(_ context.Context, level domain.Level, _ domain.LocationContext) []string {
	if level == domain.LevelCountry {
		return domain.CommonCountries()
	}
	return m.items
}

func (m *mockLookupService) QuickSuggestions(_ context.Context, partial string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partials = append(m.partials, partial)
	return m.suggestions
}

func (m *mockLookupService) Partials() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.partials...)
}

// manualClock fires scheduled calls only when Fire is called.
type manualClock struct {
	mu  sync.Mutex
	fns []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (c *manualClock) AfterFunc(_ time.Duration, fn func()) session.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fns = append(c.fns, fn)
	return manualTimer{}
}

// Fire runs the most recently scheduled call.
func (c *manualClock) Fire() {
	c.mu.Lock()
	if len(c.fns) == 0 {
		c.mu.Unlock()
		return
	}
	fn := c.fns[len(c.fns)-1]
	c.fns = nil
	c.mu.Unlock()
	fn()
}

func TestNewPorts_DefaultAutocomplete(t *testing.T) {
	p := NewPorts(&mockLookupService{}, nil)

	assert.Equal(t, domain.DefaultAppSettings().Autocomplete, p.Autocomplete)
	assert.Nil(t, p.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrMissingLookupService},
		{"missing lookup", &Ports{}, ErrMissingLookupService},
		{"lookup only", &Ports{Lookup: &mockLookupService{}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
