package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for pincode resources.
	uriScheme = "pincode://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "countries",
		Name:        "countries",
		Description: "Countries offered by the structured search",
		MIMEType:    "application/json",
	}, s.handleCountriesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "examples",
		Name:        "examples",
		Description: "Example postal-code queries",
		MIMEType:    "application/json",
	}, s.handleExamplesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "levels",
		Name:        "levels",
		Description: "Location hierarchy levels with their parents",
		MIMEType:    "application/json",
	}, s.handleLevelsResource)
}

func (s *Server) handleCountriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, domain.CommonCountries())
}

func (s *Server) handleExamplesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, domain.SuggestedQueries())
}

func (s *Server) handleLevelsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type levelInfo struct {
		Name   string `json:"name"`
		Label  string `json:"label"`
		Parent string `json:"parent,omitempty"`
	}

	levels := domain.AllLevels()
	infos := make([]levelInfo, len(levels))
	for i, l := range levels {
		infos[i] = levelInfo{Name: l.String(), Label: l.Label()}
		if p, ok := l.Parent(); ok {
			infos[i].Parent = p.String()
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
