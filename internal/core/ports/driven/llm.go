// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// LLMService provides generative-model operations for postal-code lookups.
//
// Implementations include:
//   - Gemini (web grounded via Google Search)
//   - OpenAI (GPT-4o and compatible endpoints)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a free-text answer with any grounding sources the
	// provider attached.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (*Generation, error)

	// GenerateList asks for a JSON array of strings and decodes it.
	// A reply that is not a JSON string array yields domain.ErrMalformedResponse.
	GenerateList(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error)

	// ModelName returns the name of the default model.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures a single generation request.
type GenerateOptions struct {
	// Model overrides the service's default model when set.
	Model string

	// GoogleSearch enables web grounding. Providers without grounding ignore it.
	GoogleSearch bool

	// MaxTokens is the maximum number of tokens to generate. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// Generation is the raw answer from a provider.
type Generation struct {
	// Text is the answer body. It may be empty.
	Text string

	// Sources are grounding citations, in provider order.
	Sources []domain.GroundingSource

	// Model is the model that produced the answer.
	Model string
}
