// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formatter

import "unicode/utf16"

// OpKind tags an Operation.
type OpKind string

const (
	OpParagraphStyle OpKind = "paragraph_style"
	OpTextStyle      OpKind = "text_style"
	OpBullets        OpKind = "bullets"
	OpInsertTable    OpKind = "insert_table"
	OpTableCell      OpKind = "table_cell"
)

// Range is a half-open [Start, End) span of document indices.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of indices covered.
func (r Range) Len() int { return r.End - r.Start }

// TableInsert describes an empty table inserted at Location.
type TableInsert struct {
	Location int `json:"location" yaml:"location"`
	Rows     int `json:"rows" yaml:"rows"`
	Columns  int `json:"columns" yaml:"columns"`
}

// TableCell is text written into one cell of a table inserted at Location.
type TableCell struct {
	Location int    `json:"location" yaml:"location"`
	Columns  int    `json:"columns" yaml:"columns"`
	Row      int    `json:"row" yaml:"row"`
	Column   int    `json:"column" yaml:"column"`
	Text     string `json:"text" yaml:"text"`
}

// CellIndex returns the document index of the cell's first character,
// assuming the table was inserted empty and every cell before this one in
// row-major order is still empty. Filling cells last-to-first keeps that true.
func (c TableCell) CellIndex() int {
	return c.Location + 4 + c.Row*(1+2*c.Columns) + 2*c.Column
}

// Operation is one entry of the replay list. Kind selects which payload
// is set: paragraph_style (Range, Paragraph), text_style (Range, Text),
// bullets (Range, Bullet), insert_table (Table), table_cell (Cell, Text).
type Operation struct {
	Kind OpKind `json:"kind" yaml:"kind"`

	// Line is the position of the source line in the draft.
	Line int `json:"line" yaml:"line"`

	Range     *Range          `json:"range,omitempty" yaml:"range,omitempty"`
	Paragraph *ParagraphStyle `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
	Text      *TextStyle      `json:"text,omitempty" yaml:"text,omitempty"`
	Bullet    string          `json:"bullet,omitempty" yaml:"bullet,omitempty"`
	Table     *TableInsert    `json:"table,omitempty" yaml:"table,omitempty"`
	Cell      *TableCell      `json:"cell,omitempty" yaml:"cell,omitempty"`
}

// TextLen returns the length of s in UTF-16 code units, the unit document
// indices are counted in.
func TextLen(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// clip bounds r to [lo, hi) and reports whether anything is left.
func clip(r Range, lo, hi int) (Range, bool) {
	if r.Start < lo {
		r.Start = lo
	}
	if r.End > hi {
		r.End = hi
	}
	return r, r.Start < r.End
}
