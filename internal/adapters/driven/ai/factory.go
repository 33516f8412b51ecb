// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/worldpincode/pincode-cli/internal/adapters/driven/llm/gemini"
	"github.com/worldpincode/pincode-cli/internal/adapters/driven/llm/ollama"
	"github.com/worldpincode/pincode-cli/internal/adapters/driven/llm/openai"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Ensure Factory implements the interface.
var _ driven.LLMFactory = Factory{}

// Factory builds LLM services from settings.
type Factory struct{}

// CreateLLMService implements driven.LLMFactory.
func (Factory) CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	return CreateLLMService(settings)
}

// CreateLLMService creates the LLM service for the configured provider.
// Missing or incomplete settings are a configuration error: lookups cannot
// run without a model.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, domain.NewConfigurationError(errors.New("no LLM settings"))
	}
	if !settings.Provider.IsValid() {
		return nil, domain.NewConfigurationError(fmt.Errorf("unsupported LLM provider: %q", settings.Provider))
	}
	if !settings.IsConfigured() {
		return nil, domain.NewConfigurationError(
			fmt.Errorf("%s requires an API key. Run 'pincode settings' or set GEMINI_API_KEY", settings.Provider))
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		svc, err := gemini.NewLLMService(context.Background(), gemini.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderOpenAI:
		svc, err := openai.NewLLMService(openai.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderOllama:
		return ollama.NewLLMService(ollama.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	default:
		return nil, domain.NewConfigurationError(fmt.Errorf("unsupported LLM provider: %q", settings.Provider))
	}
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// Used by 'pincode settings validate' and the settings wizard.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return nil
}
