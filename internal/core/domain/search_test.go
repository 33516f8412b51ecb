package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchResult_WebSources(t *testing.T) {
	r := &SearchResult{
		Sources: []GroundingSource{
			{Title: "India Post", URI: "https://www.indiapost.gov.in/pin"},
			{Title: "", URI: "https://example.com"},
			{Title: "No URI"},
		},
	}

	sources := r.WebSources()

	assert.Len(t, sources, 1)
	assert.Equal(t, "India Post", sources[0].Title)
}

func TestSearchResult_WebSourcesNil(t *testing.T) {
	var r *SearchResult
	assert.Nil(t, r.WebSources())
}

func TestGroundingSource_Hostname(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"https", "https://www.indiapost.gov.in/VAS/Pages/FindPinCode.aspx", "www.indiapost.gov.in"},
		{"with port", "http://localhost:8080/x", "localhost"},
		{"not a url", "::::", "::::"},
		{"no host", "relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroundingSource{URI: tt.uri}.Hostname())
		})
	}
}

func TestSearchMode_Description(t *testing.T) {
	assert.Equal(t, "Quick Search", SearchModeQuick.Description())
	assert.Equal(t, "Detailed Search", SearchModeDetailed.Description())
	assert.Equal(t, "Unknown", SearchMode("x").Description())
}

func TestNormaliseCandidates(t *testing.T) {
	in := []string{"  Warangal ", "", "warangal", "Hanamkonda", "   ", "Kazipet"}

	assert.Equal(t, []string{"Warangal", "Hanamkonda", "Kazipet"}, NormaliseCandidates(in, 0))
	assert.Equal(t, []string{"Warangal", "Hanamkonda"}, NormaliseCandidates(in, 2))
	assert.Empty(t, NormaliseCandidates(nil, 5))
}
