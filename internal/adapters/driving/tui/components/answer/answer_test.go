package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

func result() *domain.SearchResult {
	return &domain.SearchResult{
		Query: "Koramangala",
		Text:  "## Bangalore\n* **Koramangala**: 560034\n\nDelivered by Koramangala S.O.",
		Sources: []domain.GroundingSource{
			{Title: "India Post", URI: "https://www.indiapost.gov.in/pin"},
			{URI: "https://untitled.example"},
		},
	}
}

func TestNewPanel(t *testing.T) {
	p := NewPanel(nil, 5)

	require.NotNil(t, p)
	assert.NotNil(t, p.styles)
	assert.Equal(t, 20, p.width)
}

func TestPanel_RenderNil(t *testing.T) {
	assert.Empty(t, NewPanel(nil, 80).Render(nil))
}

func TestPanel_RenderMarkdown(t *testing.T) {
	p := NewPanel(nil, 80)

	out := p.Render(result())

	assert.Contains(t, out, "Koramangala")
	assert.Contains(t, out, "560034")
	assert.Contains(t, out, "Sources")
	assert.Contains(t, out, "India Post")
	assert.Contains(t, out, "www.indiapost.gov.in")
	assert.NotContains(t, out, "untitled.example")
}

func TestPanel_RenderPlain(t *testing.T) {
	p := NewPanel(nil, 80)
	p.SetPlain(true)

	out := p.Render(result())

	assert.Contains(t, out, "Bangalore\n")
	assert.Contains(t, out, "  • Koramangala: 560034")
	assert.Contains(t, out, "Delivered by Koramangala S.O.")
	assert.NotContains(t, out, "**")
}

func TestPanel_Disclaimer(t *testing.T) {
	p := NewPanel(nil, 200)
	p.SetPlain(true)

	out := p.Render(&domain.SearchResult{Text: domain.NoResultsText})

	assert.Contains(t, out, domain.NoResultsText)
	assert.Contains(t, out, Disclaimer)
	assert.NotContains(t, out, "Sources")
}

func TestPanel_SetWidthKeepsRenderer(t *testing.T) {
	p := NewPanel(nil, 80)
	first := p.renderer

	p.SetWidth(80)
	assert.Same(t, first, p.renderer)

	p.SetWidth(100)
	assert.Equal(t, 100, p.width)
}
