// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/styles"
)

// Options is a navigable list of strings with an optional type-ahead
// filter. The cursor indexes the filtered items; -1 means nothing is
// highlighted.
type Options struct {
	items    []string
	filter   string
	visible  []string
	cursor   int
	styles   *styles.Styles
	width    int
	maxShown int
}

// NewOptions creates an empty list showing at most maxShown rows.
func NewOptions(s *styles.Styles, maxShown int) *Options {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if maxShown < 1 {
		maxShown = 8
	}
	return &Options{
		cursor:   -1,
		styles:   s,
		width:    60,
		maxShown: maxShown,
	}
}

// SetItems replaces the items, clearing the filter and the cursor.
func (o *Options) SetItems(items []string) {
	o.items = items
	o.filter = ""
	o.visible = items
	o.cursor = -1
}

// Items returns every item, ignoring the filter.
func (o *Options) Items() []string {
	return o.items
}

// Visible returns the items matching the filter.
func (o *Options) Visible() []string {
	return o.visible
}

// SetFilter keeps the items containing filter, ignoring case and accents,
// so "sao" matches "São Paulo".
func (o *Options) SetFilter(filter string) {
	o.filter = filter
	if filter == "" {
		o.visible = o.items
	} else {
		needle := fold(filter)
		o.visible = nil
		for _, item := range o.items {
			if strings.Contains(fold(item), needle) {
				o.visible = append(o.visible, item)
			}
		}
	}
	if len(o.visible) == 0 {
		o.cursor = -1
	} else {
		o.cursor = 0
	}
}

// fold reduces s to lower-case ASCII for matching.
func fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

// Filter returns the current filter.
func (o *Options) Filter() string {
	return o.filter
}

// Cursor returns the highlighted index into Visible.
func (o *Options) Cursor() int {
	return o.cursor
}

// SetCursor highlights index, or clears the highlight when out of range.
func (o *Options) SetCursor(index int) {
	if index < 0 || index >= len(o.visible) {
		o.cursor = -1
		return
	}
	o.cursor = index
}

// MoveUp moves the highlight up. Moving above the first row clears it.
func (o *Options) MoveUp() {
	if o.cursor >= 0 {
		o.cursor--
	}
}

// MoveDown moves the highlight down, stopping at the last row.
func (o *Options) MoveDown() {
	if o.cursor < len(o.visible)-1 {
		o.cursor++
	}
}

// Selected returns the highlighted item.
func (o *Options) Selected() (string, bool) {
	if o.cursor < 0 || o.cursor >= len(o.visible) {
		return "", false
	}
	return o.visible[o.cursor], true
}

// IsEmpty reports whether no item matches.
func (o *Options) IsEmpty() bool {
	return len(o.visible) == 0
}

// SetWidth sets the row width used for truncation.
func (o *Options) SetWidth(width int) {
	o.width = width
}

// View renders the visible window around the cursor.
func (o *Options) View() string {
	if len(o.visible) == 0 {
		if o.filter != "" {
			return o.styles.Muted.Render(fmt.Sprintf("  no match for %q", o.filter))
		}
		return o.styles.Muted.Render("  no options")
	}

	start := 0
	if o.cursor >= o.maxShown {
		start = o.cursor - o.maxShown + 1
	}
	end := start + o.maxShown
	if end > len(o.visible) {
		end = len(o.visible)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		text := truncate(o.visible[i], o.width-4)
		if i == o.cursor {
			lines = append(lines, o.styles.Selected.Render("> "+text))
		} else {
			lines = append(lines, o.styles.Normal.Render("  "+text))
		}
	}
	if hidden := len(o.visible) - end; hidden > 0 {
		lines = append(lines, o.styles.Muted.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
