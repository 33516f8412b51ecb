package domain

import (
	"net/url"
	"strings"
)

// NoResultsText is the answer shown when the model returns no text.
const NoResultsText = "No results found."

// SearchResult is the answer to a postal-code lookup.
type SearchResult struct {
	// ID identifies the request that produced this result.
	ID string `json:"id,omitempty"`

	// Query is the query string that was looked up.
	Query string `json:"query"`

	// Text is the model's markdown answer.
	Text string `json:"text"`

	// Sources are the grounding citations attached to the answer.
	Sources []GroundingSource `json:"sources,omitempty"`

	// Model is the name of the model that answered.
	Model string `json:"model,omitempty"`
}

// WebSources returns only sources carrying both a title and a URI.
func (r *SearchResult) WebSources() []GroundingSource {
	if r == nil {
		return nil
	}
	out := make([]GroundingSource, 0, len(r.Sources))
	for _, s := range r.Sources {
		if s.URI != "" && s.Title != "" {
			out = append(out, s)
		}
	}
	return out
}

// GroundingSource is a web citation substantiating an answer.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Hostname returns the host part of the source URI, or the raw URI if it
// does not parse.
func (s GroundingSource) Hostname() string {
	u, err := url.Parse(s.URI)
	if err != nil || u.Hostname() == "" {
		return s.URI
	}
	return u.Hostname()
}

// SearchMode selects between free-text and structured lookups.
type SearchMode string

// Available search modes.
const (
	// SearchModeQuick is a single free-text query with autocomplete.
	SearchModeQuick SearchMode = "quick"

	// SearchModeDetailed is the cascading location form.
	SearchModeDetailed SearchMode = "detailed"
)

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeQuick:
		return "Quick Search"
	case SearchModeDetailed:
		return "Detailed Search"
	default:
		return unknownDescription
	}
}

// NormaliseCandidates trims entries, drops blanks and removes duplicates
// while keeping the first-seen order. At most limit entries are kept when
// limit is positive.
func NormaliseCandidates(items []string, limit int) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
