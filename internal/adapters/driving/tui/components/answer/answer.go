// Package answer renders lookup results for the TUI.
package answer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui/styles"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// Disclaimer is shown under every answer.
const Disclaimer = "AI-generated results may be inaccurate. Verify critical postal codes with the official postal service."

// Panel renders a result's markdown answer followed by its sources.
type Panel struct {
	styles   *styles.Styles
	renderer *glamour.TermRenderer
	width    int

	// plain skips markdown rendering.
	plain bool
}

// NewPanel creates a panel that wraps at width.
func NewPanel(s *styles.Styles, width int) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	p := &Panel{styles: s}
	p.SetWidth(width)
	return p
}

// SetWidth sets the wrap width, rebuilding the markdown renderer when it
// changes.
func (p *Panel) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == p.width && p.renderer != nil {
		return
	}
	p.width = width

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		p.renderer = nil
		return
	}
	p.renderer = renderer
}

// SetPlain switches markdown rendering off.
func (p *Panel) SetPlain(plain bool) {
	p.plain = plain
}

// Render formats result for display.
func (p *Panel) Render(result *domain.SearchResult) string {
	if result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.renderText(result.Text))

	if sources := result.WebSources(); len(sources) > 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.Subtitle.Render("Sources"))
		b.WriteString("\n")
		for i, s := range sources {
			fmt.Fprintf(&b, "  %d. %s %s\n", i+1,
				p.styles.Normal.Render(s.Title),
				p.styles.Link.Render(s.Hostname()))
		}
	}

	b.WriteString("\n")
	b.WriteString(p.styles.Warning.Render(lipgloss.NewStyle().Width(p.width).Render(Disclaimer)))
	return b.String()
}

func (p *Panel) renderText(text string) string {
	if !p.plain && p.renderer != nil {
		if out, err := p.renderer.Render(text); err == nil {
			return out
		}
	}
	return p.renderLines(text)
}

// renderLines styles the answer line by line without a markdown engine.
func (p *Panel) renderLines(text string) string {
	bold := p.styles.Normal.Bold(true)

	var b strings.Builder
	for _, line := range domain.ParseAnswer(text) {
		var body strings.Builder
		for _, seg := range line.Segments {
			if seg.Bold {
				body.WriteString(bold.Render(seg.Text))
			} else {
				body.WriteString(p.styles.Normal.Render(seg.Text))
			}
		}

		switch line.Kind {
		case domain.LineHeading:
			style := p.styles.Subtitle
			if line.Level == 1 {
				style = p.styles.Title
			}
			b.WriteString(style.Render(line.Text()))
		case domain.LineListItem:
			b.WriteString("  • " + body.String())
		case domain.LineBlank:
		default:
			b.WriteString(body.String())
		}
		b.WriteString("\n")
	}
	return b.String()
}
