package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCountriesResource(t *testing.T) {
	server := newTestServer(t, PortsFor(&mockLookupService{}))

	result, err := server.handleCountriesResource(context.Background(), readRequest("pincode://countries"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var countries []string
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &countries))
	assert.Equal(t, domain.CommonCountries(), countries)
}

func TestServer_handleExamplesResource(t *testing.T) {
	server := newTestServer(t, PortsFor(&mockLookupService{}))

	result, err := server.handleExamplesResource(context.Background(), readRequest("pincode://examples"))

	require.NoError(t, err)
	var examples []string
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &examples))
	assert.Equal(t, domain.SuggestedQueries(), examples)
}

func TestServer_handleLevelsResource(t *testing.T) {
	server := newTestServer(t, PortsFor(&mockLookupService{}))

	result, err := server.handleLevelsResource(context.Background(), readRequest("pincode://levels"))

	require.NoError(t, err)
	var levels []struct {
		Name   string `json:"name"`
		Parent string `json:"parent"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &levels))
	require.Len(t, levels, domain.NumLevels)
	assert.Equal(t, "country", levels[0].Name)
	assert.Empty(t, levels[0].Parent)
	assert.Equal(t, "village", levels[5].Name)
	assert.Equal(t, "mandal", levels[5].Parent)
}
