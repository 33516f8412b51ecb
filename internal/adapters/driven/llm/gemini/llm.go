// Package gemini provides an LLM service adapter using the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/worldpincode/pincode-cli/internal/adapters/driven/llm"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultLLMModel   = "gemini-3-flash-preview"
	DefaultLiteModel  = "gemini-flash-lite-latest"
	DefaultLLMTimeout = 60 * time.Second
)

const providerName = "gemini"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string

	// Model is the default model (default: gemini-3-flash-preview).
	Model string

	// Timeout bounds each request (default: 60s).
	Timeout time.Duration

	// HTTPClient replaces the client the SDK uses.
	HTTPClient *http.Client
}

// LLMService answers lookups with Gemini, optionally grounded by Google Search.
type LLMService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// listSchema constrains list replies to an array of strings.
var listSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeString},
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewConfigurationError(errors.New("gemini: API key is required"))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &LLMService{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Generate produces a free-text answer. With GoogleSearch set the request
// carries the search tool and the reply's grounding chunks become sources.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (*driven.Generation, error) {
	model := s.modelFor(opts)
	config := baseConfig(opts)
	if opts.GoogleSearch {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := s.generate(ctx, model, prompt, config)
	if err != nil {
		return nil, err
	}

	return &driven.Generation{
		Text:    resp.Text(),
		Sources: groundingSources(resp),
		Model:   model,
	}, nil
}

// GenerateList asks for a JSON string array using the response schema.
func (s *LLMService) GenerateList(ctx context.Context, prompt string, opts driven.GenerateOptions) ([]string, error) {
	config := baseConfig(opts)
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = listSchema

	resp, err := s.generate(ctx, s.modelFor(opts), prompt, config)
	if err != nil {
		return nil, err
	}

	return llm.DecodeList(resp.Text())
}

func (s *LLMService) generate(
	ctx context.Context,
	model, prompt string,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, classify(err)
	}
	return resp, nil
}

func (s *LLMService) modelFor(opts driven.GenerateOptions) string {
	if opts.Model != "" {
		return opts.Model
	}
	return s.model
}

func baseConfig(opts driven.GenerateOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	return config
}

// groundingSources collects web citations from the first candidate.
func groundingSources(resp *genai.GenerateContentResponse) []domain.GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	sources := make([]domain.GroundingSource, 0, len(meta.GroundingChunks))
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, domain.GroundingSource{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return sources
}

// classify maps SDK errors onto configuration and transient failures.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return llm.ClassifyStatus(providerName, apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return llm.ClassifyStatus(providerName, apiErrPtr.Code, apiErrPtr.Message)
	}
	return llm.ClassifyError(providerName, err)
}

// ModelName returns the default model.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping fetches the model's metadata, which validates the API key without
// running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.Models.Get(ctx, s.model, nil); err != nil {
		return classify(err)
	}
	return nil
}

// Close releases resources. The SDK client holds no connections of its own.
func (s *LLMService) Close() error {
	return nil
}
