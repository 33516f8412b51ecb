package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies the generative-AI service answering lookups.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is the Google Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is the OpenAI API or a compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// SupportsGrounding returns true if the provider can cite web sources.
func (p AIProvider) SupportsGrounding() bool {
	return p == AIProviderGemini
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud, web grounded)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model answers lookups and location listings.
	Model string

	// LiteModel answers autocomplete requests, where speed beats depth.
	LiteModel string

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible APIs).
	BaseURL string

	// APIKey is the API key (for Gemini/OpenAI).
	APIKey string

	// GoogleSearch enables web grounding for lookups (Gemini only).
	GoogleSearch bool
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AutocompleteSettings tunes quick-search suggestions.
type AutocompleteSettings struct {
	// Debounce is the quiet period before a suggestion request is sent.
	Debounce time.Duration

	// MinChars is the shortest partial query that triggers suggestions.
	MinChars int

	// MaxSuggestions caps the number of suggestions shown.
	MaxSuggestions int
}

// RateLimitSettings bounds outbound model requests.
type RateLimitSettings struct {
	// RequestsPerSecond is the sustained rate.
	RequestsPerSecond float64

	// Burst is the maximum burst size.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Autocomplete holds quick-search suggestion settings.
	Autocomplete AutocompleteSettings

	// RateLimit holds outbound request limits.
	RateLimit RateLimitSettings
}

// Autocomplete defaults.
const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultMinChars       = 3
	DefaultMaxSuggestions = 5
)

// DefaultAppSettings returns settings with sensible defaults.
// The API key is left empty; it comes from config or the environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:     AIProviderGemini,
			Model:        DefaultLLMModels()[AIProviderGemini],
			LiteModel:    DefaultLiteModels()[AIProviderGemini],
			GoogleSearch: true,
		},
		Autocomplete: AutocompleteSettings{
			Debounce:       DefaultDebounce,
			MinChars:       DefaultMinChars,
			MaxSuggestions: DefaultMaxSuggestions,
		},
		RateLimit: RateLimitSettings{
			RequestsPerSecond: 2,
			Burst:             5,
		},
	}
}

// AllLLMProviders returns providers that can answer lookups.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini: "gemini-3-flash-preview",
		AIProviderOpenAI: "gpt-4o-mini",
		AIProviderOllama: "llama3.2",
	}
}

// DefaultLiteModels returns default autocomplete models for each provider.
func DefaultLiteModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini: "gemini-flash-lite-latest",
		AIProviderOpenAI: "gpt-4o-mini",
		AIProviderOllama: "llama3.2",
	}
}
