package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driven"
)

// mockLLMService records prompts and replays canned answers.
type mockLLMService struct {
	mu        sync.Mutex
	gen       *driven.Generation
	list      []string
	err       error
	prompts   []string
	opts      []driven.GenerateOptions
	listCalls int
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (*driven.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return nil, m.err
	}
	return m.gen, nil
}

func (m *mockLLMService) GenerateList(_ context.Context, prompt string, opts driven.GenerateOptions) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *mockLLMService) ModelName() string           { return "mock-model" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

func (m *mockLLMService) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// mockPromptStore serves fixed templates.
type mockPromptStore struct {
	prompts map[string]string
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{prompts: map[string]string{
		driven.PromptLookup:       "LOOKUP {{.Query}}",
		driven.PromptListStates:   "STATES {{.Country}}",
		driven.PromptListCities:   "CITIES {{.State}}, {{.Country}}",
		driven.PromptListAreas:    "AREAS {{.City}}, {{.State}}",
		driven.PromptListMandals:  "MANDALS {{.City}}, {{.State}}, {{.Country}}",
		driven.PromptListVillages: "VILLAGES {{.Mandal}}, {{.City}}, {{.State}}",
		driven.PromptSuggest:      "SUGGEST {{.Limit}} {{.Query}}",
	}}
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

func newLookupService(llm *mockLLMService) *LookupService {
	settings := domain.DefaultAppSettings()
	settings.RateLimit = domain.RateLimitSettings{}
	svc := NewLookupService(llm, newMockPromptStore(), settings)
	svc.newID = func() string { return "req-1" }
	return svc
}

func TestLookupService_Lookup(t *testing.T) {
	llm := &mockLLMService{gen: &driven.Generation{
		Text:    "**Koramangala**: 560034",
		Sources: []domain.GroundingSource{{Title: "India Post", URI: "https://indiapost.gov.in"}},
		Model:   "gemini-3-flash-preview",
	}}
	svc := newLookupService(llm)

	result, err := svc.Lookup(context.Background(), "  Koramangala  ")

	require.NoError(t, err)
	assert.Equal(t, &domain.SearchResult{
		ID:      "req-1",
		Query:   "Koramangala",
		Text:    "**Koramangala**: 560034",
		Sources: []domain.GroundingSource{{Title: "India Post", URI: "https://indiapost.gov.in"}},
		Model:   "gemini-3-flash-preview",
	}, result)
	assert.Equal(t, "LOOKUP Koramangala", llm.lastPrompt())
	assert.True(t, llm.opts[0].GoogleSearch)
}

func TestLookupService_Lookup_EmptyTextDefaults(t *testing.T) {
	llm := &mockLLMService{gen: &driven.Generation{Text: "  "}}
	svc := newLookupService(llm)

	result, err := svc.Lookup(context.Background(), "90210")

	require.NoError(t, err)
	assert.Equal(t, domain.NoResultsText, result.Text)
	assert.Equal(t, "mock-model", result.Model)
	assert.Empty(t, result.Sources)
}

func TestLookupService_Lookup_BlankQuery(t *testing.T) {
	llm := &mockLLMService{}
	svc := newLookupService(llm)

	_, err := svc.Lookup(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.Empty(t, llm.prompts)
}

func TestLookupService_Lookup_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
		config  bool
	}{
		{
			name:    "configuration passes through",
			err:     domain.NewConfigurationError(errors.New("bad key")),
			wantMsg: domain.ConfigurationMessage,
			config:  true,
		},
		{
			name:    "bare configuration sentinel",
			err:     fmt.Errorf("x: %w", domain.ErrConfiguration),
			wantMsg: domain.ConfigurationMessage,
			config:  true,
		},
		{
			name:    "unclassified becomes transient",
			err:     errors.New("socket closed"),
			wantMsg: "socket closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newLookupService(&mockLLMService{err: tt.err})

			_, err := svc.Lookup(context.Background(), "Paris")

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, domain.UserMessage(err))
			assert.Equal(t, tt.config, domain.IsConfigurationError(err))
			if !tt.config {
				assert.ErrorIs(t, err, domain.ErrTransient)
			}
		})
	}
}

func TestLookupService_Lookup_RateLimitTriggersBackoff(t *testing.T) {
	svc := newLookupService(&mockLLMService{err: domain.NewTransientError(domain.ErrRateLimited)})

	_, err := svc.Lookup(context.Background(), "Paris")

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.False(t, svc.limiter.Allow())
}

func TestLookupService_ListLocations_Prompts(t *testing.T) {
	ctx := domain.LocationContext{Country: "India", State: "Telangana", City: "Warangal", Mandal: "Hanamkonda"}
	tests := []struct {
		level  domain.Level
		prompt string
	}{
		{domain.LevelState, "STATES India"},
		{domain.LevelCity, "CITIES Telangana, India"},
		{domain.LevelArea, "AREAS Warangal, Telangana"},
		{domain.LevelMandal, "MANDALS Warangal, Telangana, India"},
		{domain.LevelVillage, "VILLAGES Hanamkonda, Warangal, Telangana"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			llm := &mockLLMService{list: []string{" Kazipet ", "", "kazipet", "Madikonda"}}
			svc := newLookupService(llm)

			items := svc.ListLocations(context.Background(), tt.level, ctx)

			assert.Equal(t, []string{"Kazipet", "Madikonda"}, items)
			assert.Equal(t, tt.prompt, llm.lastPrompt())
			assert.Empty(t, llm.opts[0].Model)
		})
	}
}

func TestLookupService_ListLocations_Country(t *testing.T) {
	llm := &mockLLMService{}
	svc := newLookupService(llm)

	items := svc.ListLocations(context.Background(), domain.LevelCountry, domain.LocationContext{})

	assert.Equal(t, domain.CommonCountries(), items)
	assert.Zero(t, llm.listCalls)
}

func TestLookupService_ListLocations_IncompleteContext(t *testing.T) {
	llm := &mockLLMService{list: []string{"x"}}
	svc := newLookupService(llm)

	items := svc.ListLocations(context.Background(), domain.LevelVillage, domain.LocationContext{Country: "India"})

	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, llm.listCalls)
}

func TestLookupService_ListLocations_FailureIsEmpty(t *testing.T) {
	for _, err := range []error{
		domain.ErrMalformedResponse,
		domain.NewConfigurationError(errors.New("no key")),
		errors.New("boom"),
	} {
		svc := newLookupService(&mockLLMService{err: err})

		items := svc.ListLocations(context.Background(), domain.LevelState, domain.LocationContext{Country: "India"})

		assert.NotNil(t, items)
		assert.Empty(t, items)
	}
}

func TestLookupService_ListLocations_Cached(t *testing.T) {
	llm := &mockLLMService{list: []string{"Goa", "Kerala"}}
	svc := newLookupService(llm)
	parent := domain.LocationContext{Country: "India"}

	first := svc.ListLocations(context.Background(), domain.LevelState, parent)
	second := svc.ListLocations(context.Background(), domain.LevelState, parent)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, llm.listCalls)
}

func TestLookupService_ListLocations_FailureNotCached(t *testing.T) {
	llm := &mockLLMService{err: errors.New("boom")}
	svc := newLookupService(llm)
	parent := domain.LocationContext{Country: "India"}

	assert.Empty(t, svc.ListLocations(context.Background(), domain.LevelState, parent))

	llm.err = nil
	llm.list = []string{"Goa"}
	assert.Equal(t, []string{"Goa"}, svc.ListLocations(context.Background(), domain.LevelState, parent))
	assert.Equal(t, 2, llm.listCalls)
}

func TestLookupService_QuickSuggestions(t *testing.T) {
	llm := &mockLLMService{list: []string{"Bangalore", "Bangalore North", "Bangalore South", "Bangladesh", "Bangkok", "Bangor"}}
	svc := newLookupService(llm)

	items := svc.QuickSuggestions(context.Background(), "Bang")

	assert.Len(t, items, domain.DefaultMaxSuggestions)
	assert.Equal(t, "SUGGEST 5 Bang", llm.lastPrompt())
	assert.Equal(t, "gemini-flash-lite-latest", llm.opts[0].Model)
}

func TestLookupService_QuickSuggestions_Failure(t *testing.T) {
	svc := newLookupService(&mockLLMService{err: errors.New("offline")})

	assert.Empty(t, svc.QuickSuggestions(context.Background(), "Bang"))
	assert.Empty(t, svc.QuickSuggestions(context.Background(), "  "))
}

func TestLookupService_QuickSuggestions_DroppedWhenOverBudget(t *testing.T) {
	llm := &mockLLMService{list: []string{"a"}}
	settings := domain.DefaultAppSettings()
	settings.RateLimit = domain.RateLimitSettings{RequestsPerSecond: 0.001, Burst: 1}
	svc := NewLookupService(llm, newMockPromptStore(), settings)

	assert.Equal(t, []string{"a"}, svc.QuickSuggestions(context.Background(), "abc"))
	assert.Empty(t, svc.QuickSuggestions(context.Background(), "abcd"))
	assert.Equal(t, 1, llm.listCalls)
}

func TestLookupService_MissingPrompt(t *testing.T) {
	llm := &mockLLMService{gen: &driven.Generation{Text: "x"}}
	svc := NewLookupService(llm, &mockPromptStore{prompts: map[string]string{}}, domain.DefaultAppSettings())

	_, err := svc.Lookup(context.Background(), "Paris")

	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Empty(t, llm.prompts)
}

func TestLookupService_BadTemplate(t *testing.T) {
	store := newMockPromptStore()
	store.prompts[driven.PromptLookup] = "{{.Nope}}"
	llm := &mockLLMService{gen: &driven.Generation{Text: "x"}}
	svc := NewLookupService(llm, store, domain.DefaultAppSettings())

	_, err := svc.Lookup(context.Background(), "Paris")

	assert.ErrorIs(t, err, domain.ErrTransient)
}
