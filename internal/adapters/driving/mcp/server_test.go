package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil postcode service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingPostcodeService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrMissingPostcodeService)
		assert.Nil(t, server)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(PortsFor(&mockLookupService{}))
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("postcode only is valid", func(t *testing.T) {
		ports := &Ports{Postcode: &mockLookupService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("locations without postcode is invalid", func(t *testing.T) {
		ports := &Ports{Locations: &mockLookupService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingPostcodeService)
	})
}

func TestPortsFor(t *testing.T) {
	svc := &mockLookupService{}
	ports := PortsFor(svc)

	assert.Same(t, svc, ports.Postcode)
	assert.Same(t, svc, ports.Locations)
	assert.Same(t, svc, ports.Suggestions)
}

// connect starts an in-memory session between the server and a test client.
func connect(t *testing.T, svc *mockLookupService) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server, err := NewServer(PortsFor(svc))
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestServer_ListsTools(t *testing.T) {
	cs := connect(t, &mockLookupService{})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t,
		[]string{"lookup_postcode", "list_locations", "suggest_queries", "build_query"}, names)
}

func TestServer_CallLookup(t *testing.T) {
	svc := &mockLookupService{}
	cs := connect(t, svc)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "lookup_postcode",
		Arguments: map[string]any{"query": "Koramangala"},
	})
	require.NoError(t, err)

	assert.False(t, res.IsError)
	assert.Equal(t, "Koramangala", svc.lastQuery)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "560034")
}

func TestServer_Handler(t *testing.T) {
	server, err := NewServer(PortsFor(&mockLookupService{}))
	require.NoError(t, err)

	assert.NotNil(t, server.Handler())
}
