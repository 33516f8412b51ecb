package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
)

// mockLookupService implements driving.LookupService for command tests.
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
	return &domain.SearchResult{Query: query, Text: "**" + query + "**: 560034"}, nil
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

// mockSettingsService implements driving.SettingsService for command tests.
type mockSettingsService struct {
	settings    domain.AppSettings
	getErr      error
	setErr      error
	validateErr error
	pingErr     error

	set map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM.Provider = provider
	m.settings.LLM.Model = model
	m.settings.LLM.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"llm.provider", "llm.api_key", "autocomplete.debounce"}
}

func (m *mockSettingsService) Validate() error          { return m.validateErr }
func (m *mockSettingsService) ValidateLLMConfig() error { return m.pingErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// withServices installs services for one test.
func withServices(t *testing.T, lookup driving.LookupService, settings driving.SettingsService, err error) {
	t.Helper()
	prevLookup, prevSettings, prevErr := lookupService, settingsService, lookupErr
	SetServices(lookup, settings, err)
	t.Cleanup(func() {
		SetServices(prevLookup, prevSettings, prevErr)
	})
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
