package services

import (
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// DefaultLocationCacheSize bounds how many location lists stay in memory.
const DefaultLocationCacheSize = 256

// LocationCache keeps recently listed locations so walking back up the
// form does not ask the model again. Empty lists are never stored, so a
// failed listing is retried on the next request.
type LocationCache struct {
	lists *lru.Cache[string, []string]
}

// NewLocationCache creates a cache holding up to size lists. A size below
// one uses DefaultLocationCacheSize.
func NewLocationCache(size int) *LocationCache {
	if size < 1 {
		size = DefaultLocationCacheSize
	}
	lists, err := lru.New[string, []string](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &LocationCache{lists: lists}
}

// Get returns a copy of the cached list for level under parent.
func (c *LocationCache) Get(level domain.Level, parent domain.LocationContext) ([]string, bool) {
	items, ok := c.lists.Get(locationKey(level, parent))
	if !ok {
		return nil, false
	}
	return slices.Clone(items), true
}

// Add stores items for level under parent.
func (c *LocationCache) Add(level domain.Level, parent domain.LocationContext, items []string) {
	if len(items) == 0 {
		return
	}
	c.lists.Add(locationKey(level, parent), slices.Clone(items))
}

// Len returns the number of cached lists.
func (c *LocationCache) Len() int {
	return c.lists.Len()
}

// Purge drops every cached list.
func (c *LocationCache) Purge() {
	c.lists.Purge()
}

// locationKey only uses the ancestors that the level's prompt reads, so
// a stray mandal does not split the cache for state listings.
func locationKey(level domain.Level, parent domain.LocationContext) string {
	parts := []string{level.String()}
	for _, a := range level.Ancestors() {
		var v string
		switch a {
		case domain.LevelCountry:
			v = parent.Country
		case domain.LevelState:
			v = parent.State
		case domain.LevelCity:
			v = parent.City
		case domain.LevelMandal:
			v = parent.Mandal
		}
		parts = append(parts, strings.ToLower(strings.TrimSpace(v)))
	}
	return strings.Join(parts, "\x1f")
}
