package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driven"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
	"github.com/worldpincode/pincode-cli/internal/logger"
)

// Ensure LookupService implements the interfaces.
var _ driving.LookupService = (*LookupService)(nil)

// LookupService answers postal-code lookups, location listings and
// autocomplete suggestions through a generative model.
type LookupService struct {
	llm      driven.LLMService
	prompts  driven.PromptStore
	limiter  *RateLimiter
	cache    *LocationCache
	settings domain.AppSettings
	newID    func() string
}

// NewLookupService creates a lookup service.
func NewLookupService(
	llm driven.LLMService,
	prompts driven.PromptStore,
	settings domain.AppSettings,
) *LookupService {
	return &LookupService{
		llm:      llm,
		prompts:  prompts,
		limiter:  NewRateLimiter(settings.RateLimit),
		cache:    NewLocationCache(DefaultLocationCacheSize),
		settings: settings,
		newID:    uuid.NewString,
	}
}

// Lookup asks the model for the postal code of query.
func (s *LookupService) Lookup(ctx context.Context, query string) (*domain.SearchResult, error) {
	logger.Section("Postcode Lookup")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	id := s.newID()
	log := logger.L().With(zap.String("request", id), zap.String("query", query))

	prompt, err := s.render(driven.PromptLookup, driven.PromptData{Query: query})
	if err != nil {
		return nil, domain.NewTransientError(err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, domain.NewTransientError(fmt.Errorf("wait for rate limit: %w", err))
	}

	grounded := s.settings.LLM.GoogleSearch
	log.Debug("calling model", zap.String("model", s.llm.ModelName()), zap.Bool("grounded", grounded))

	gen, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{GoogleSearch: grounded})
	if err != nil {
		err = s.classify(err)
		log.Warn("lookup failed", zap.Error(err))
		return nil, err
	}

	text := gen.Text
	if strings.TrimSpace(text) == "" {
		text = domain.NoResultsText
	}
	model := gen.Model
	if model == "" {
		model = s.llm.ModelName()
	}

	log.Debug("lookup answered", zap.Int("chars", len(text)), zap.Int("sources", len(gen.Sources)))

	return &domain.SearchResult{
		ID:      id,
		Query:   query,
		Text:    text,
		Sources: gen.Sources,
		Model:   model,
	}, nil
}

// ListLocations returns candidates for level. It never fails: any error is
// logged and yields an empty list.
func (s *LookupService) ListLocations(ctx context.Context, level domain.Level, parent domain.LocationContext) []string {
	if level == domain.LevelCountry {
		return domain.CommonCountries()
	}

	name, ok := driven.ListPromptFor(level)
	if !ok || !parent.Satisfies(level) {
		logger.Debug("Skipping %s listing: incomplete context %+v", level, parent)
		return []string{}
	}

	if items, ok := s.cache.Get(level, parent); ok {
		logger.Debug("Serving %d %s candidates from cache", len(items), level)
		return items
	}

	log := logger.L().With(zap.Stringer("level", level))

	prompt, err := s.render(name, driven.PromptData{
		Country: parent.Country,
		State:   parent.State,
		City:    parent.City,
		Mandal:  parent.Mandal,
	})
	if err != nil {
		log.Warn("render prompt", zap.Error(err))
		return []string{}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return []string{}
	}

	items, err := s.llm.GenerateList(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		s.noteRateLimit(err)
		log.Warn("list locations failed", zap.Error(err))
		return []string{}
	}

	items = domain.NormaliseCandidates(items, 0)
	s.cache.Add(level, parent, items)
	log.Debug("listed locations", zap.Int("count", len(items)))
	return items
}

// QuickSuggestions proposes completions for partial using the lite model.
// Requests over the rate budget are dropped rather than queued.
func (s *LookupService) QuickSuggestions(ctx context.Context, partial string) []string {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []string{}
	}
	if !s.limiter.Allow() {
		logger.Debug("Suggestions for %q dropped by rate limiter", partial)
		return []string{}
	}

	limit := s.settings.Autocomplete.MaxSuggestions
	if limit <= 0 {
		limit = domain.DefaultMaxSuggestions
	}

	prompt, err := s.render(driven.PromptSuggest, driven.PromptData{Query: partial, Limit: limit})
	if err != nil {
		logger.Warn("Render suggest prompt: %v", err)
		return []string{}
	}

	items, err := s.llm.GenerateList(ctx, prompt, driven.GenerateOptions{Model: s.settings.LLM.LiteModel})
	if err != nil {
		s.noteRateLimit(err)
		logger.Debug("Suggestions for %q failed: %v", partial, err)
		return []string{}
	}

	return domain.NormaliseCandidates(items, limit)
}

// render loads a prompt template and executes it against data.
func (s *LookupService) render(name string, data driven.PromptData) (string, error) {
	if s.prompts == nil {
		return "", fmt.Errorf("no prompt store for %q", name)
	}
	text, err := s.prompts.Load(name)
	if err != nil {
		return "", fmt.Errorf("load prompt: %w", err)
	}

	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse prompt %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt %q: %w", name, err)
	}
	return buf.String(), nil
}

// classify makes sure every lookup failure carries a display message.
func (s *LookupService) classify(err error) error {
	s.noteRateLimit(err)

	var le *domain.LookupError
	if errors.As(err, &le) {
		return err
	}
	if domain.IsConfigurationError(err) {
		return domain.NewConfigurationError(err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTransientError(fmt.Errorf("request cancelled: %w", err))
	}
	return domain.NewTransientError(err)
}

func (s *LookupService) noteRateLimit(err error) {
	if errors.Is(err, domain.ErrRateLimited) {
		s.limiter.Backoff(0)
	}
}
