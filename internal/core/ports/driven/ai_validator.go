package driven

import "github.com/worldpincode/pincode-cli/internal/core/domain"

// AIConfigValidator validates AI provider configurations by testing
// connectivity to the underlying service.
type AIConfigValidator interface {
	// ValidateLLM pings the configured provider.
	// Returns a domain.ErrConfiguration wrapped error when credentials are
	// missing or rejected.
	ValidateLLM(config *domain.LLMSettings) error
}

// LLMFactory builds an LLMService for the given settings.
type LLMFactory interface {
	// CreateLLMService returns a service for settings, or an error wrapping
	// domain.ErrConfiguration when the settings are unusable.
	CreateLLMService(settings *domain.LLMSettings) (LLMService, error)
}
