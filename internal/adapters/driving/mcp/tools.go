package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/session"
)

// LookupInput is the input schema for the lookup_postcode tool.
type LookupInput struct {
	Query string `json:"query" jsonschema:"a place, address or postal code, e.g. 'Koramangala, Bangalore' or '90210'"`
}

// LookupOutput is the output schema for the lookup_postcode tool.
type LookupOutput struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
	Model   string         `json:"model,omitempty"`
}

// SourceOutput is one grounding citation.
type SourceOutput struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ListLocationsInput is the input schema for the list_locations tool.
type ListLocationsInput struct {
	Level   string `json:"level" jsonschema:"one of state, city, area, mandal, village (country returns a fixed list)"`
	Country string `json:"country,omitempty" jsonschema:"country, required for every level below country"`
	State   string `json:"state,omitempty" jsonschema:"state or province, required for city and below"`
	City    string `json:"city,omitempty" jsonschema:"district or city, required for area and mandal"`
	Mandal  string `json:"mandal,omitempty" jsonschema:"mandal or tehsil, required for village"`
}

// ListLocationsOutput is the output schema for the list_locations tool.
type ListLocationsOutput struct {
	Level string   `json:"level"`
	Items []string `json:"items"`
	Count int      `json:"count"`
}

// SuggestInput is the input schema for the suggest_queries tool.
type SuggestInput struct {
	Partial string `json:"partial,omitempty" jsonschema:"partially typed query; empty returns example queries"`
}

// SuggestOutput is the output schema for the suggest_queries tool.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

// BuildQueryInput is the input schema for the build_query tool.
type BuildQueryInput struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city" jsonschema:"district or city"`
	Area    string `json:"area,omitempty" jsonschema:"area or locality, for area search"`
	Mandal  string `json:"mandal,omitempty" jsonschema:"mandal or tehsil, for mandal search"`
	Village string `json:"village,omitempty" jsonschema:"village or post office, for mandal search"`
}

// BuildQueryOutput is the output schema for the build_query tool.
type BuildQueryOutput struct {
	Query   string   `json:"query,omitempty"`
	SubMode string   `json:"sub_mode"`
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_postcode",
		Description: "Find postal codes (zip codes, pincodes) for a place, address or landmark, with web sources",
	}, s.handleLookup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_locations",
		Description: "List states, districts, areas, mandals or villages under a parent location",
	}, s.handleListLocations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_queries",
		Description: "Suggest completions for a partially typed postal-code query",
	}, s.handleSuggest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_query",
		Description: "Build the lookup query for a structured location and report missing levels",
	}, s.handleBuildQuery)
}

// handleLookup handles the lookup_postcode tool invocation.
func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	result, err := s.ports.Postcode.Lookup(ctx, input.Query)
	if err != nil {
		return nil, LookupOutput{}, fmt.Errorf("lookup failed: %w", err)
	}

	sources := result.WebSources()
	output := LookupOutput{
		Query:   result.Query,
		Answer:  result.Text,
		Sources: make([]SourceOutput, len(sources)),
		Model:   result.Model,
	}
	for i, src := range sources {
		output.Sources[i] = SourceOutput{Title: src.Title, URI: src.URI}
	}

	return nil, output, nil
}

// handleListLocations handles the list_locations tool invocation.
func (s *Server) handleListLocations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListLocationsInput,
) (*mcp.CallToolResult, ListLocationsOutput, error) {
	level, err := domain.ParseLevel(input.Level)
	if err != nil {
		return nil, ListLocationsOutput{}, err
	}

	var items []string
	if level == domain.LevelCountry {
		items = domain.CommonCountries()
	} else {
		if s.ports.Locations == nil {
			return nil, ListLocationsOutput{}, fmt.Errorf("list_locations: %w", ErrToolUnavailable)
		}
		parent := domain.LocationContext{
			Country: strings.TrimSpace(input.Country),
			State:   strings.TrimSpace(input.State),
			City:    strings.TrimSpace(input.City),
			Mandal:  strings.TrimSpace(input.Mandal),
		}
		if !parent.Satisfies(level) {
			return nil, ListLocationsOutput{}, fmt.Errorf("%w: %s needs %s",
				domain.ErrInvalidInput, level, levelNames(level.Ancestors()))
		}
		items = s.ports.Locations.ListLocations(ctx, level, parent)
	}

	return nil, ListLocationsOutput{
		Level: level.String(),
		Items: items,
		Count: len(items),
	}, nil
}

// handleSuggest handles the suggest_queries tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	partial := strings.TrimSpace(input.Partial)
	if partial == "" {
		return nil, SuggestOutput{Suggestions: domain.SuggestedQueries()}, nil
	}
	if s.ports.Suggestions == nil {
		return nil, SuggestOutput{}, fmt.Errorf("suggest_queries: %w", ErrToolUnavailable)
	}
	return nil, SuggestOutput{Suggestions: s.ports.Suggestions.QuickSuggestions(ctx, partial)}, nil
}

// handleBuildQuery handles the build_query tool invocation.
func (s *Server) handleBuildQuery(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input BuildQueryInput,
) (*mcp.CallToolResult, BuildQueryOutput, error) {
	form := session.FormFor(domain.LocationSelection{
		Country: strings.TrimSpace(input.Country),
		State:   strings.TrimSpace(input.State),
		City:    strings.TrimSpace(input.City),
		Area:    strings.TrimSpace(input.Area),
		Mandal:  strings.TrimSpace(input.Mandal),
		Village: strings.TrimSpace(input.Village),
	})

	output := BuildQueryOutput{SubMode: form.SubMode.String()}
	if query, ok := form.Query(); ok {
		output.Query = query
		output.Valid = true
		return nil, output, nil
	}
	for _, l := range form.Missing() {
		output.Missing = append(output.Missing, l.String())
	}
	return nil, output, nil
}

func levelNames(levels []domain.Level) string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}
