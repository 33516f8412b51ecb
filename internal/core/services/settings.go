package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driven"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMLiteModel    = "llm.lite_model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyLLMGoogleSearch = "llm.google_search"
	keyDebounce        = "autocomplete.debounce"
	keyMinChars        = "autocomplete.min_chars"
	keyMaxSuggestions  = "autocomplete.max_suggestions"
	keyRateRPS         = "rate_limit.rps"
	keyRateBurst       = "rate_limit.burst"
)

// apiKeyEnv lists the environment variables consulted for each provider,
// first match wins.
var apiKeyEnv = map[domain.AIProvider][]string{
	domain.AIProviderGemini: {"GEMINI_API_KEY", "API_KEY"},
	domain.AIProviderOpenAI: {"OPENAI_API_KEY"},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings. An API key found in the
// environment overrides the stored one.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)
	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:     provider,
			Model:        s.getString(keyLLMModel, domain.DefaultLLMModels()[provider]),
			LiteModel:    s.getString(keyLLMLiteModel, domain.DefaultLiteModels()[provider]),
			BaseURL:      s.configStore.GetString(keyLLMBaseURL), // empty is valid for cloud providers
			APIKey:       s.configStore.GetString(keyLLMAPIKey),
			GoogleSearch: s.getBool(keyLLMGoogleSearch, defaults.LLM.GoogleSearch),
		},
		Autocomplete: domain.AutocompleteSettings{
			Debounce:       s.getDuration(keyDebounce, defaults.Autocomplete.Debounce),
			MinChars:       s.getInt(keyMinChars, defaults.Autocomplete.MinChars),
			MaxSuggestions: s.getInt(keyMaxSuggestions, defaults.Autocomplete.MaxSuggestions),
		},
		RateLimit: domain.RateLimitSettings{
			RequestsPerSecond: s.getFloat(keyRateRPS, defaults.RateLimit.RequestsPerSecond),
			Burst:             s.getInt(keyRateBurst, defaults.RateLimit.Burst),
		},
	}

	if key := s.envAPIKey(provider); key != "" {
		settings.LLM.APIKey = key
	}

	return settings, nil
}

// Save persists application settings. A key that came from the environment
// is not written to disk.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMLiteModel, settings.LLM.LiteModel},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMGoogleSearch, settings.LLM.GoogleSearch},
		{keyDebounce, settings.Autocomplete.Debounce},
		{keyMinChars, settings.Autocomplete.MinChars},
		{keyMaxSuggestions, settings.Autocomplete.MaxSuggestions},
		{keyRateRPS, settings.RateLimit.RequestsPerSecond},
		{keyRateBurst, settings.RateLimit.Burst},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	apiKey := settings.LLM.APIKey
	if apiKey != "" && apiKey != s.envAPIKey(settings.LLM.Provider) {
		if err := s.configStore.Set(keyLLMAPIKey, apiKey); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		apiKey = s.envAPIKey(provider)
		if apiKey == "" {
			return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}
	settings.LLM.LiteModel = domain.DefaultLiteModels()[provider]

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	if !provider.SupportsGrounding() {
		settings.LLM.GoogleSearch = false
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case keyLLMProvider:
		p := domain.AIProvider(strings.ToLower(value))
		if !p.IsValid() {
			return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, value)
		}
		parsed = p.String()
	case keyLLMModel, keyLLMLiteModel, keyLLMBaseURL, keyLLMAPIKey:
		parsed = value
	case keyLLMGoogleSearch:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case keyDebounce:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s must be a duration such as 300ms", domain.ErrInvalidInput, key)
		}
		parsed = d
	case keyMinChars, keyMaxSuggestions, keyRateBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case keyRateRPS:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		parsed = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the keys accepted by Set.
func (s *SettingsService) Keys() []string {
	return []string{
		keyLLMProvider,
		keyLLMModel,
		keyLLMLiteModel,
		keyLLMBaseURL,
		keyLLMAPIKey,
		keyLLMGoogleSearch,
		keyDebounce,
		keyMinChars,
		keyMaxSuggestions,
		keyRateRPS,
		keyRateBurst,
	}
}

// Validate checks that the settings can answer lookups.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.IsConfigured() {
		return domain.NewConfigurationError(
			fmt.Errorf("LLM provider %q is not configured", settings.LLM.Provider))
	}
	if settings.LLM.Model == "" {
		return domain.NewConfigurationError(fmt.Errorf("no model set for %s", settings.LLM.Provider))
	}
	if settings.Autocomplete.MinChars < 1 {
		return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, keyMinChars)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

func (s *SettingsService) envAPIKey(provider domain.AIProvider) string {
	if s.getenv == nil {
		return ""
	}
	for _, name := range apiKeyEnv[provider] {
		if v := strings.TrimSpace(s.getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
