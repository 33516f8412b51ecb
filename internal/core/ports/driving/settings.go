package driving

import "github.com/worldpincode/pincode-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with environment
	// overrides applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider. An empty model selects
	// the provider default.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Set updates one setting by its config key, e.g. "autocomplete.min_chars".
	Set(key, value string) error

	// Keys returns the keys accepted by Set.
	Keys() []string

	// Validate checks the stored settings without contacting the provider.
	Validate() error

	// ValidateLLMConfig pings the configured provider.
	ValidateLLMConfig() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
