package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// outputFormat selects how answers are written.
type outputFormat int

const (
	formatPlain outputFormat = iota
	formatPretty
	formatJSON
)

const defaultWidth = 80

var (
	sourceTitleStyle = lipgloss.NewStyle().Bold(true)
	sourceHostStyle  = lipgloss.NewStyle().Faint(true)
)

// resolveFormat picks JSON or plain when asked, otherwise pretty output
// when w is a terminal.
func resolveFormat(w io.Writer, asJSON, plain bool) outputFormat {
	switch {
	case asJSON:
		return formatJSON
	case plain:
		return formatPlain
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return formatPretty
	}
	return formatPlain
}

// terminalWidth returns the width of w, or defaultWidth when unknown.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// renderResult writes a lookup answer and its sources.
func renderResult(w io.Writer, result *domain.SearchResult, format outputFormat) error {
	switch format {
	case formatJSON:
		return writeJSON(w, result)
	case formatPretty:
		return renderPretty(w, result)
	default:
		renderPlain(w, result)
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderPretty(w io.Writer, result *domain.SearchResult) error {
	width := terminalWidth(w)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		renderPlain(w, result)
		return nil //nolint:nilerr // plain output is a complete fallback
	}

	out, err := renderer.Render(result.Text)
	if err != nil {
		renderPlain(w, result)
		return nil //nolint:nilerr // plain output is a complete fallback
	}
	fmt.Fprint(w, out)

	sources := result.WebSources()
	if len(sources) == 0 {
		return nil
	}
	fmt.Fprintln(w, sourceTitleStyle.Render("Sources"))
	for i, s := range sources {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, s.Title, sourceHostStyle.Render("("+s.Hostname()+")"))
		fmt.Fprintf(w, "     %s\n", s.URI)
	}
	return nil
}

// renderPlain writes the answer without markup.
func renderPlain(w io.Writer, result *domain.SearchResult) {
	for _, line := range domain.ParseAnswer(result.Text) {
		text := line.Text()
		switch line.Kind {
		case domain.LineHeading:
			fmt.Fprintln(w, text)
			switch line.Level {
			case 1:
				fmt.Fprintln(w, strings.Repeat("=", len([]rune(text))))
			case 2:
				fmt.Fprintln(w, strings.Repeat("-", len([]rune(text))))
			}
		case domain.LineListItem:
			fmt.Fprintf(w, "  • %s\n", text)
		case domain.LineBlank:
			fmt.Fprintln(w)
		default:
			fmt.Fprintln(w, text)
		}
	}

	sources := result.WebSources()
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sources:")
	for i, s := range sources {
		fmt.Fprintf(w, "  [%d] %s (%s)\n", i+1, s.Title, s.Hostname())
		fmt.Fprintf(w, "      %s\n", s.URI)
	}
}

// displayError shows msg while keeping the cause for errors.Is.
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.err }

// lookupFailure turns a lookup error into the message shown to the user.
func lookupFailure(err error) error {
	msg := domain.UserMessage(err)
	if domain.IsConfigurationError(err) {
		msg += "\nRun 'pincode settings' to review your provider and API key."
	}
	return &displayError{msg: msg, err: err}
}
