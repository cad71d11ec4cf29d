// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formatter

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Role names a styling rule in a StyleSheet. A classification maps to
// exactly one role; headings map to one role per level.
type Role string

const (
	RoleTitle       Role = "title"
	RoleHeading1    Role = "heading1"
	RoleHeading2    Role = "heading2"
	RoleHeading3    Role = "heading3"
	RoleClause      Role = "clause"
	RoleSignature   Role = "signature"
	RoleQuote       Role = "quote"
	RoleBullet      Role = "bullet"
	RoleParagraph   Role = "paragraph"
	RoleTableHeader Role = "table_header"
	RoleTableCell   Role = "table_cell"
)

// Color is an RGB colour with components in [0,1].
type Color struct {
	Red   float64 `json:"red" yaml:"red"`
	Green float64 `json:"green" yaml:"green"`
	Blue  float64 `json:"blue" yaml:"blue"`
}

// ParagraphStyle holds paragraph-level properties. Lengths are in points;
// LineSpacing is a percentage (100 = single). Zero values are left unset.
type ParagraphStyle struct {
	NamedStyle  string  `json:"named_style,omitempty" yaml:"named_style,omitempty"`
	Alignment   string  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	LineSpacing float64 `json:"line_spacing,omitempty" yaml:"line_spacing,omitempty"`
	SpaceAbove  float64 `json:"space_above,omitempty" yaml:"space_above,omitempty"`
	SpaceBelow  float64 `json:"space_below,omitempty" yaml:"space_below,omitempty"`
	IndentStart float64 `json:"indent_start,omitempty" yaml:"indent_start,omitempty"`
	Shading     *Color  `json:"shading,omitempty" yaml:"shading,omitempty"`
}

// Fields lists the document-service field mask for the set properties.
func (p ParagraphStyle) Fields() []string {
	var f []string
	if p.NamedStyle != "" {
		f = append(f, "namedStyleType")
	}
	if p.Alignment != "" {
		f = append(f, "alignment")
	}
	if p.LineSpacing > 0 {
		f = append(f, "lineSpacing")
	}
	if p.SpaceAbove > 0 {
		f = append(f, "spaceAbove")
	}
	if p.SpaceBelow > 0 {
		f = append(f, "spaceBelow")
	}
	if p.IndentStart > 0 {
		f = append(f, "indentStart")
	}
	if p.Shading != nil {
		f = append(f, "shading")
	}
	return f
}

// TextStyle holds character-level properties. Bold and Italic are always
// applied so a regular role resets weight explicitly.
type TextStyle struct {
	FontSize   float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	FontFamily string  `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	Bold       bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
}

// Fields lists the document-service field mask for the set properties.
func (t TextStyle) Fields() []string {
	f := []string{"bold", "italic"}
	if t.FontSize > 0 {
		f = append(f, "fontSize")
	}
	if t.FontFamily != "" {
		f = append(f, "weightedFontFamily")
	}
	return f
}

// Style is the full styling rule for one role. Paragraph and Bullet are
// optional; table roles only use Text.
type Style struct {
	Paragraph *ParagraphStyle `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
	Bullet    string          `json:"bullet,omitempty" yaml:"bullet,omitempty"`
	Text      *TextStyle      `json:"text,omitempty" yaml:"text,omitempty"`
}

// StyleSheet maps roles to styles.
type StyleSheet map[Role]Style

const defaultFont = "Arial"

// DefaultStyleSheet returns the built-in styles.
func DefaultStyleSheet() StyleSheet {
	text := func(size float64, bold, italic bool) *TextStyle {
		return &TextStyle{FontSize: size, FontFamily: defaultFont, Bold: bold, Italic: italic}
	}
	return StyleSheet{
		RoleTitle: {
			Paragraph: &ParagraphStyle{Alignment: "CENTER", SpaceBelow: 12},
			Text:      text(16, true, false),
		},
		RoleHeading1: {
			Paragraph: &ParagraphStyle{NamedStyle: "HEADING_1", SpaceBelow: 12},
			Text:      text(16, true, false),
		},
		RoleHeading2: {
			Paragraph: &ParagraphStyle{NamedStyle: "HEADING_2", SpaceBelow: 8},
			Text:      text(14, true, false),
		},
		RoleHeading3: {
			Paragraph: &ParagraphStyle{NamedStyle: "HEADING_3", SpaceBelow: 6},
			Text:      text(12, true, false),
		},
		RoleClause: {
			Paragraph: &ParagraphStyle{SpaceAbove: 8, SpaceBelow: 6},
			Text:      text(12, true, false),
		},
		RoleSignature: {
			Paragraph: &ParagraphStyle{SpaceAbove: 12},
			Text:      text(11, false, false),
		},
		RoleQuote: {
			Paragraph: &ParagraphStyle{
				IndentStart: 36,
				Shading:     &Color{Red: 0.95, Green: 0.95, Blue: 0.95},
			},
			Text: text(11, false, true),
		},
		RoleBullet: {
			Bullet: "BULLET_DISC_CIRCLE_SQUARE",
			Text:   text(11, false, false),
		},
		RoleParagraph: {
			Paragraph: &ParagraphStyle{Alignment: "JUSTIFIED", LineSpacing: 115},
			Text:      text(11, false, false),
		},
		RoleTableHeader: {Text: text(11, true, false)},
		RoleTableCell:   {Text: text(11, false, false)},
	}
}

// Merge returns a copy of s with every role in overrides replaced.
func (s StyleSheet) Merge(overrides StyleSheet) StyleSheet {
	out := make(StyleSheet, len(s)+len(overrides))
	for r, st := range s {
		out[r] = st
	}
	for r, st := range overrides {
		out[r] = st
	}
	return out
}

// LoadStyleSheet reads role overrides from a YAML file and merges them over
// the default styles. Example:
//
//	clause:
//	  paragraph: {indent_start: 18, space_below: 6}
//	  text: {font_size: 11, font_family: Arial}
func LoadStyleSheet(path string) (StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style sheet %s: %w", path, err)
	}
	var overrides StyleSheet
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing style sheet %s: %w", path, err)
	}
	return DefaultStyleSheet().Merge(overrides), nil
}
