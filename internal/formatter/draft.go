// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

// Marker records the lightweight markup that was stripped from a line during
// normalization. The formatter classifies lines by marker, not by the markup
// characters, because those characters never reach the inserted text.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerHeading
	MarkerQuote
	MarkerBullet
	MarkerBold
	MarkerTable
)

var markerNames = map[Marker]string{
	MarkerNone:    "none",
	MarkerHeading: "heading",
	MarkerQuote:   "quote",
	MarkerBullet:  "bullet",
	MarkerBold:    "bold",
	MarkerTable:   "table",
}

func (m Marker) String() string {
	if s, ok := markerNames[m]; ok {
		return s
	}
	return "unknown"
}

// Spacing selects how many newlines separate consecutive lines in the
// inserted text.
type Spacing string

const (
	// SpacingSingle joins lines with one newline.
	SpacingSingle Spacing = "single"

	// SpacingDouble leaves one blank line between lines.
	SpacingDouble Spacing = "double"
)

// ParseSpacing validates a spacing name. The empty string selects
// SpacingSingle.
func ParseSpacing(s string) (Spacing, error) {
	switch Spacing(strings.ToLower(strings.TrimSpace(s))) {
	case "", SpacingSingle:
		return SpacingSingle, nil
	case SpacingDouble:
		return SpacingDouble, nil
	default:
		return "", fmt.Errorf("unknown spacing %q (want single or double)", s)
	}
}

// separator returns the newline run placed between two lines.
func (s Spacing) separator() string {
	if s == SpacingDouble {
		return "\n\n"
	}
	return "\n"
}

// Line is one non-blank line of a Draft.
type Line struct {
	// Text is the normalized line text, markup stripped.
	Text string `json:"text" yaml:"text"`

	// Marker is the structural markup detected on the source line.
	Marker Marker `json:"marker" yaml:"marker"`

	// Level is the heading level (1-3) for MarkerHeading lines.
	Level int `json:"level,omitempty" yaml:"level,omitempty"`

	// Cells holds the parsed cells of a MarkerTable line, extra cells included.
	Cells []string `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// Draft is the normalized form of generated text: an ordered list of
// non-blank lines plus the spacing policy used to join them.
type Draft struct {
	Lines   []Line
	Spacing Spacing
}

// Text returns the text inserted into the document: every line that is not
// part of a table block, joined by the spacing separator, with a trailing
// newline so the last line is addressable. A draft without flat lines
// yields the empty string.
func (d Draft) Text() string {
	var parts []string
	for _, ln := range d.Lines {
		if ln.Marker == MarkerTable {
			continue
		}
		parts = append(parts, ln.Text)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, d.Spacing.separator()) + "\n"
}

// Emphasis delimiters only count when the outside of each delimiter is a
// line edge or a non-word character, so "5*x*2" and "file__name__v2" keep
// their asterisks and underscores.
var (
	headingRe       = regexp.MustCompile(`^(#{1,6})(?:\s+(.*))?$`)
	bulletPrefixRe  = regexp.MustCompile(`^[-*+•]\s+`)
	headingPrefixRe = regexp.MustCompile(`^#{1,6}(?:\s+|$)`)
	ruleLineRe      = regexp.MustCompile(`^([-*]\s*){3,}$`)
	boldItalicRe    = regexp.MustCompile(`(^|[^\w*])\*\*\*([^*\s](?:[^*]*[^*\s])?)\*\*\*($|[^\w*])`)
	boldRe          = regexp.MustCompile(`(^|[^\w*])\*\*([^*\s](?:.*?[^*\s])?)\*\*($|[^\w*])`)
	underBoldRe     = regexp.MustCompile(`(^|[^\w])__([^_\s](?:[^_]*[^_\s])?)__($|[^\w])`)
	italicRe        = regexp.MustCompile(`(^|[^\w*])\*([^*\s](?:[^*]*[^*\s])?)\*($|[^\w*])`)
	separatorRe     = regexp.MustCompile(`^:?-{3,}:?$`)
)

// Normalize converts raw generated text into a Draft. It unifies line
// endings, trims every line, detects and strips structural markup, removes
// emphasis markers and drops lines that are blank afterwards. The first
// line is never treated as a table row since it always becomes the title.
func Normalize(raw string, spacing Spacing) Draft {
	if spacing != SpacingDouble {
		spacing = SpacingSingle
	}
	raw = strings.ToValidUTF8(raw, "�")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	d := Draft{Spacing: spacing}
	for _, src := range strings.Split(raw, "\n") {
		ln, ok := parseLine(src)
		if !ok {
			continue
		}
		if len(d.Lines) == 0 && ln.Marker == MarkerTable {
			ln = Line{Text: stripEmphasis(strings.TrimSpace(src))}
			if ln.Text == "" {
				continue
			}
		}
		d.Lines = append(d.Lines, ln)
	}
	return d
}

// parseLine normalizes one source line. It reports false for lines that
// are blank once markup is removed. Only "---" and "***" style rules are
// dropped; a run of underscores is a signature blank and is kept.
func parseLine(src string) (Line, bool) {
	s := strings.TrimSpace(src)
	if s == "" || ruleLineRe.MatchString(s) {
		return Line{}, false
	}

	var ln Line
	switch {
	case strings.HasPrefix(s, "|"):
		ln.Marker = MarkerTable
		ln.Cells = splitCells(s)
		ln.Text = s
		return ln, true
	case headingRe.MatchString(s):
		m := headingRe.FindStringSubmatch(s)
		ln.Marker = MarkerHeading
		ln.Level = min(len(m[1]), 3)
	case strings.HasPrefix(s, ">"):
		ln.Marker = MarkerQuote
	case isWholeLineBold(s):
		ln.Marker = MarkerBold
	case bulletPrefixRe.MatchString(s):
		ln.Marker = MarkerBullet
	}

	ln.Text = stripLeadingMarkers(stripEmphasis(stripLeadingMarkers(s)))
	if ln.Text == "" {
		return Line{}, false
	}
	return ln, true
}

// stripLeadingMarkers removes every leading heading, quote and bullet
// marker in one pass, so "- - nested" and "> > quote" end up marker-free.
func stripLeadingMarkers(s string) string {
	for {
		s = strings.TrimSpace(s)
		switch {
		case headingPrefixRe.MatchString(s):
			s = headingPrefixRe.ReplaceAllString(s, "")
		case strings.HasPrefix(s, ">"):
			s = s[1:]
		case bulletPrefixRe.MatchString(s):
			s = bulletPrefixRe.ReplaceAllString(s, "")
		default:
			return s
		}
	}
}

// isWholeLineBold reports whether the entire line is wrapped in emphasis,
// e.g. "**Payment Terms**" or "*Key benefits*:".
func isWholeLineBold(s string) bool {
	s = strings.TrimSuffix(s, ":")
	if len(s) < 3 || !strings.HasPrefix(s, "*") || !strings.HasSuffix(s, "*") {
		return false
	}
	if strings.HasPrefix(s, "* ") {
		return false
	}
	inner := strings.Trim(s, "*")
	return strings.TrimSpace(inner) != "" && !strings.Contains(inner, "*")
}

// stripEmphasis removes bold and italic delimiters.
func stripEmphasis(s string) string {
	s = replaceDelimited(boldItalicRe, s)
	s = replaceDelimited(boldRe, s)
	s = replaceDelimited(underBoldRe, s)
	s = replaceDelimited(italicRe, s)
	return strings.TrimSpace(s)
}

// replaceDelimited unwraps every match of re, keeping the boundary
// characters captured on either side. Adjacent spans share a boundary
// character, so it repeats until nothing changes.
func replaceDelimited(re *regexp.Regexp, s string) string {
	for {
		next := re.ReplaceAllString(s, "${1}${2}${3}")
		if next == s {
			return s
		}
		s = next
	}
}

// splitCells parses a pipe-delimited row. The leading pipe is dropped, and
// so is the trailing one when present.
func splitCells(s string) []string {
	parts := strings.Split(s, "|")[1:]
	if strings.HasSuffix(s, "|") && len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, stripEmphasis(strings.TrimSpace(p)))
	}
	return cells
}

// isSeparatorRow reports whether every cell is a markdown alignment rule
// such as "---" or ":--:".
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorRe.MatchString(c) {
			return false
		}
	}
	return true
}
