// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formatter

import (
	"regexp"
	"strings"
)

// Kind is the structural role assigned to a line.
type Kind string

const (
	KindTitle          Kind = "title"
	KindSectionHeading Kind = "section_heading"
	KindClause         Kind = "clause"
	KindSignature      Kind = "signature"
	KindBulletItem     Kind = "bullet_item"
	KindQuote          Kind = "quote"
	KindTableRow       Kind = "table_row"
	KindParagraph      Kind = "paragraph"
)

// Class is the outcome of classifying one line.
type Class struct {
	Kind Kind

	// Level is the heading level (1-3) for KindSectionHeading.
	Level int

	// Rule names the rule that matched; empty for the default.
	Rule string
}

// Role returns the style sheet role for the class.
func (c Class) Role() Role {
	switch c.Kind {
	case KindTitle:
		return RoleTitle
	case KindSectionHeading:
		switch c.Level {
		case 1:
			return RoleHeading1
		case 3:
			return RoleHeading3
		default:
			return RoleHeading2
		}
	case KindClause:
		return RoleClause
	case KindSignature:
		return RoleSignature
	case KindBulletItem:
		return RoleBullet
	case KindQuote:
		return RoleQuote
	case KindTableRow:
		return RoleTableCell
	default:
		return RoleParagraph
	}
}

// Rule is one predicate → classification entry. Rules are evaluated in
// order and the first match wins.
type Rule struct {
	Name  string
	Kind  Kind
	Match func(pos int, ln Line) bool

	// Level fixes the heading level. Zero takes the level from the line.
	Level int
}

// DefaultSectionKeywords are whole-line headings recognised without markup.
var DefaultSectionKeywords = []string{
	"introduction",
	"background",
	"recitals",
	"definitions",
	"terms and conditions",
	"payment terms",
	"confidentiality",
	"governing law",
	"conclusion",
	"summary",
}

var numberedRe = regexp.MustCompile(`^\d+[.)]\s`)

// DefaultRules returns the built-in rule table. Keyword matching is
// case-insensitive.
func DefaultRules(sectionKeywords []string) []Rule {
	keywords := make(map[string]bool, len(sectionKeywords))
	for _, k := range sectionKeywords {
		keywords[strings.ToLower(strings.TrimSpace(k))] = true
	}

	return []Rule{
		{Name: "first-line", Kind: KindTitle, Match: func(pos int, _ Line) bool {
			return pos == 0
		}},
		{Name: "pipe-row", Kind: KindTableRow, Match: func(_ int, ln Line) bool {
			return ln.Marker == MarkerTable
		}},
		{Name: "heading-marker", Kind: KindSectionHeading, Match: func(_ int, ln Line) bool {
			return ln.Marker == MarkerHeading
		}},
		{Name: "quote-marker", Kind: KindQuote, Match: func(_ int, ln Line) bool {
			return ln.Marker == MarkerQuote
		}},
		{Name: "bullet-marker", Kind: KindBulletItem, Match: func(_ int, ln Line) bool {
			return ln.Marker == MarkerBullet
		}},
		{Name: "clause-prefix", Kind: KindClause, Match: func(_ int, ln Line) bool {
			return hasPrefixFold(ln.Text, "clause")
		}},
		{Name: "signature-prefix", Kind: KindSignature, Match: func(_ int, ln Line) bool {
			return hasPrefixFold(ln.Text, "signature")
		}},
		{Name: "numbered", Kind: KindClause, Match: func(_ int, ln Line) bool {
			return numberedRe.MatchString(ln.Text)
		}},
		{Name: "section-keyword", Kind: KindSectionHeading, Level: 2, Match: func(_ int, ln Line) bool {
			key := strings.ToLower(strings.TrimSuffix(ln.Text, ":"))
			return keywords[strings.TrimSpace(key)]
		}},
		{Name: "bold-line", Kind: KindSectionHeading, Level: 3, Match: func(_ int, ln Line) bool {
			return ln.Marker == MarkerBold
		}},
	}
}

// Classify applies rules to the line at position pos. Lines no rule
// matches are paragraphs.
func Classify(rules []Rule, pos int, ln Line) Class {
	for _, r := range rules {
		if !r.Match(pos, ln) {
			continue
		}
		c := Class{Kind: r.Kind, Rule: r.Name}
		if c.Kind == KindSectionHeading {
			c.Level = r.Level
			if c.Level == 0 {
				c.Level = ln.Level
			}
			if c.Level < 1 || c.Level > 3 {
				c.Level = 2
			}
		}
		return c
	}
	return Class{Kind: KindParagraph}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
