package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpincode/pincode-cli/internal/adapters/driven/storage/memory"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// mockAIConfigValidator records the settings it was asked to validate.
type mockAIConfigValidator struct {
	err   error
	calls []*domain.LLMSettings
}

func (m *mockAIConfigValidator) ValidateLLM(s *domain.LLMSettings) error {
	m.calls = append(m.calls, s)
	return m.err
}

func newSettingsService(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	service.getenv = func(name string) string { return env[name] }
	return service, store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, &defaults, settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newSettingsService(nil)
	_ = store.Set("llm.provider", "openai")
	_ = store.Set("llm.api_key", "sk-stored")
	_ = store.Set("llm.google_search", false)
	_ = store.Set("autocomplete.debounce", "450ms")
	_ = store.Set("autocomplete.min_chars", 4)
	_ = store.Set("rate_limit.rps", 0.5)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", settings.LLM.Model)
	assert.Equal(t, "sk-stored", settings.LLM.APIKey)
	assert.False(t, settings.LLM.GoogleSearch)
	assert.Equal(t, 450*time.Millisecond, settings.Autocomplete.Debounce)
	assert.Equal(t, 4, settings.Autocomplete.MinChars)
	assert.Equal(t, domain.DefaultMaxSuggestions, settings.Autocomplete.MaxSuggestions)
	assert.InDelta(t, 0.5, settings.RateLimit.RequestsPerSecond, 1e-9)
}

func TestSettingsService_Get_InvalidProviderFallsBack(t *testing.T) {
	service, store := newSettingsService(nil)
	_ = store.Set("llm.provider", "anthropic")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderGemini, settings.LLM.Provider)
}

func TestSettingsService_Get_EnvOverridesKey(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"gemini variable", map[string]string{"GEMINI_API_KEY": "g-env", "API_KEY": "generic"}, "g-env"},
		{"generic variable", map[string]string{"API_KEY": "generic"}, "generic"},
		{"openai variable ignored for gemini", map[string]string{"OPENAI_API_KEY": "sk"}, "stored"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newSettingsService(tt.env)
			_ = store.Set("llm.api_key", "stored")

			settings, err := service.Get()

			require.NoError(t, err)
			assert.Equal(t, tt.want, settings.LLM.APIKey)
		})
	}
}

func TestSettingsService_Save_DoesNotPersistEnvKey(t *testing.T) {
	service, store := newSettingsService(map[string]string{"GEMINI_API_KEY": "from-env"})

	settings, err := service.Get()
	require.NoError(t, err)
	require.NoError(t, service.Save(settings))

	_, stored := store.Get("llm.api_key")
	assert.False(t, stored)
	assert.Equal(t, "gemini", store.GetString("llm.provider"))
	assert.Equal(t, domain.DefaultDebounce, store.GetDuration("autocomplete.debounce"))
}

func TestSettingsService_Save_RoundTrip(t *testing.T) {
	service, _ := newSettingsService(nil)

	settings := domain.DefaultAppSettings()
	settings.LLM.APIKey = "k"
	settings.LLM.LiteModel = "tiny"
	settings.Autocomplete.MaxSuggestions = 8
	settings.RateLimit.Burst = 9

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, &settings, got)
}

func TestSettingsService_Save_Nil(t *testing.T) {
	service, _ := newSettingsService(nil)

	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	service, _ := newSettingsService(nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "", ""))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Equal(t, "http://localhost:11434", settings.LLM.BaseURL)
	assert.False(t, settings.LLM.GoogleSearch)
}

func TestSettingsService_SetLLMProvider_CustomModel(t *testing.T) {
	service, _ := newSettingsService(nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderGemini, "gemini-2.5-pro", "key"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", settings.LLM.Model)
	assert.Equal(t, "key", settings.LLM.APIKey)
	assert.Empty(t, settings.LLM.BaseURL)
}

func TestSettingsService_SetLLMProvider_Errors(t *testing.T) {
	service, _ := newSettingsService(nil)

	assert.ErrorIs(t, service.SetLLMProvider("bogus", "", ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetLLMProvider(domain.AIProviderOpenAI, "", ""), domain.ErrInvalidInput)
}

func TestSettingsService_SetLLMProvider_KeyFromEnv(t *testing.T) {
	service, store := newSettingsService(map[string]string{"OPENAI_API_KEY": "sk-env"})

	require.NoError(t, service.SetLLMProvider(domain.AIProviderOpenAI, "", ""))

	_, stored := store.Get("llm.api_key")
	assert.False(t, stored)
}

func TestSettingsService_Set(t *testing.T) {
	service, _ := newSettingsService(nil)

	require.NoError(t, service.Set("autocomplete.debounce", "500ms"))
	require.NoError(t, service.Set("autocomplete.min_chars", "2"))
	require.NoError(t, service.Set("llm.google_search", "false"))
	require.NoError(t, service.Set("llm.provider", "OpenAI"))
	require.NoError(t, service.Set("rate_limit.rps", "0"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, settings.Autocomplete.Debounce)
	assert.Equal(t, 2, settings.Autocomplete.MinChars)
	assert.False(t, settings.LLM.GoogleSearch)
	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Provider)
	assert.Zero(t, settings.RateLimit.RequestsPerSecond)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service, _ := newSettingsService(nil)

	tests := []struct {
		key   string
		value string
	}{
		{"nope", "1"},
		{"llm.provider", "anthropic"},
		{"llm.google_search", "maybe"},
		{"autocomplete.debounce", "soon"},
		{"autocomplete.min_chars", "0"},
		{"rate_limit.burst", "x"},
		{"rate_limit.rps", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service, _ := newSettingsService(nil)

	keys := service.Keys()

	assert.Len(t, keys, 11)
	assert.Contains(t, keys, "autocomplete.debounce")
	assert.Contains(t, keys, "llm.api_key")
}

func TestSettingsService_Validate(t *testing.T) {
	service, _ := newSettingsService(nil)

	err := service.Validate()
	assert.True(t, domain.IsConfigurationError(err))

	require.NoError(t, service.Set("llm.api_key", "k"))
	assert.NoError(t, service.Validate())
}

func TestSettingsService_Validate_OllamaNeedsNoKey(t *testing.T) {
	service, _ := newSettingsService(nil)
	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "", ""))

	assert.NoError(t, service.Validate())
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	service, _ := newSettingsService(map[string]string{"GEMINI_API_KEY": "k"})

	assert.NoError(t, service.ValidateLLMConfig())

	validator := &mockAIConfigValidator{err: errors.New("unreachable")}
	service.aiValidator = validator

	assert.EqualError(t, service.ValidateLLMConfig(), "unreachable")
	require.Len(t, validator.calls, 1)
	assert.Equal(t, "k", validator.calls[0].APIKey)
}
