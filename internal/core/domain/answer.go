package domain

import (
	"regexp"
	"strings"
)

// LineKind classifies one line of a model answer.
type LineKind int

// Line kinds.
const (
	LineParagraph LineKind = iota
	LineHeading
	LineListItem
	LineBlank
)

// AnswerLine is one classified line of an answer.
type AnswerLine struct {
	Kind LineKind

	// Level is the heading depth (1-3) for headings, 0 otherwise.
	Level int

	// Segments is the line content split into plain and bold runs.
	Segments []Segment
}

// Text returns the line content without emphasis markers.
func (l AnswerLine) Text() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Segment is a run of text with uniform emphasis.
type Segment struct {
	Text string
	Bold bool
}

var (
	boldPattern     = regexp.MustCompile(`\*\*.*?\*\*`)
	listItemPattern = regexp.MustCompile(`^\s*[*-]\s`)
)

// ParseAnswer splits a markdown-ish answer into classified lines.
// Headings are recognised for #, ## and ###. Bold emphasis is only parsed in
// list items and paragraphs; headings are kept verbatim.
func ParseAnswer(text string) []AnswerLine {
	raw := strings.Split(text, "\n")
	lines := make([]AnswerLine, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, parseLine(line))
	}
	return lines
}

func parseLine(line string) AnswerLine {
	switch {
	case strings.HasPrefix(line, "### "):
		return heading(3, strings.TrimPrefix(line, "### "))
	case strings.HasPrefix(line, "## "):
		return heading(2, strings.TrimPrefix(line, "## "))
	case strings.HasPrefix(line, "# "):
		return heading(1, strings.TrimPrefix(line, "# "))
	case listItemPattern.MatchString(line):
		return AnswerLine{Kind: LineListItem, Segments: emphasis(listItemPattern.ReplaceAllString(line, ""))}
	case strings.TrimSpace(line) == "":
		return AnswerLine{Kind: LineBlank}
	default:
		return AnswerLine{Kind: LineParagraph, Segments: emphasis(line)}
	}
}

func heading(level int, text string) AnswerLine {
	return AnswerLine{Kind: LineHeading, Level: level, Segments: []Segment{{Text: text}}}
}

func emphasis(line string) []Segment {
	var segs []Segment
	last := 0
	for _, m := range boldPattern.FindAllStringIndex(line, -1) {
		if m[0] > last {
			segs = append(segs, Segment{Text: line[last:m[0]]})
		}
		segs = append(segs, Segment{Text: line[m[0]+2 : m[1]-2], Bold: true})
		last = m[1]
	}
	if last < len(line) {
		segs = append(segs, Segment{Text: line[last:]})
	}
	return segs
}
