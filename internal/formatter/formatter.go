// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package formatter turns generated plain text into the text inserted into a
// new document and the ordered style operations that make it read like one.
// It does no I/O: a document service replays the result as one bulk text
// insertion followed by the operations in order.
package formatter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTitle is returned when the document title is blank.
	ErrEmptyTitle = errors.New("document title is empty")

	// ErrEmptyContent is returned when nothing is left after normalization.
	ErrEmptyContent = errors.New("content is empty after normalization")
)

const (
	// DefaultBase is the first insertable index of an empty document.
	DefaultBase = 1

	DefaultMaxTableRows = 4
	DefaultTableColumns = 2
)

// Options configures a Formatter. Zero values take the defaults.
type Options struct {
	// Base is the document index the text is inserted at.
	Base int

	// Spacing selects single or double newlines between lines.
	Spacing Spacing

	// Rules is the classification table. Nil uses DefaultRules with
	// SectionKeywords.
	Rules []Rule

	// SectionKeywords feeds DefaultRules when Rules is nil.
	SectionKeywords []string

	// Styles maps roles to styles. Nil uses DefaultStyleSheet.
	Styles StyleSheet

	MaxTableRows int
	TableColumns int
}

// Formatter converts generated text into a Result.
type Formatter struct {
	opts Options
}

// New returns a Formatter with defaults filled in.
func New(opts Options) *Formatter {
	if opts.Base <= 0 {
		opts.Base = DefaultBase
	}
	if opts.Spacing != SpacingDouble {
		opts.Spacing = SpacingSingle
	}
	if opts.Rules == nil {
		kw := opts.SectionKeywords
		if kw == nil {
			kw = DefaultSectionKeywords
		}
		opts.Rules = DefaultRules(kw)
	}
	if opts.Styles == nil {
		opts.Styles = DefaultStyleSheet()
	}
	if opts.MaxTableRows <= 0 {
		opts.MaxTableRows = DefaultMaxTableRows
	}
	if opts.TableColumns <= 0 {
		opts.TableColumns = DefaultTableColumns
	}
	return &Formatter{opts: opts}
}

// Format formats raw with the default options.
func Format(title, raw string) (*Result, error) {
	return New(Options{}).Format(title, raw)
}

// LineOutcome reports what happened to one draft line.
type LineOutcome struct {
	Index   int    `json:"index" yaml:"index"`
	Text    string `json:"text" yaml:"text"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Range   Range  `json:"range" yaml:"range"`
	Ops     int    `json:"ops" yaml:"ops"`
	Skipped bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Result is the output of Format.
type Result struct {
	Title      string        `json:"title" yaml:"title"`
	Base       int           `json:"base" yaml:"base"`
	Text       string        `json:"text" yaml:"text"`
	Operations []Operation   `json:"operations" yaml:"operations"`
	Lines      []LineOutcome `json:"lines" yaml:"lines"`
}

// Skipped returns the outcomes of lines whose styling was skipped.
func (r *Result) Skipped() []LineOutcome {
	var out []LineOutcome
	for _, l := range r.Lines {
		if l.Skipped {
			out = append(out, l)
		}
	}
	return out
}

// accumulator is threaded through the line fold. Each step returns a new
// value; nothing outside the fold observes it until Format returns.
type accumulator struct {
	cursor int
	ops    []Operation
	lines  []LineOutcome
	run    []indexedLine
	blocks []tableBlock
}

type indexedLine struct {
	pos int
	ln  Line
}

// Format normalizes raw and emits the insert text and operations. A line
// whose styling fails is reported as skipped and rendered unstyled; it never
// aborts the pass.
func (f *Formatter) Format(title, raw string) (*Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	draft := Normalize(raw, f.opts.Spacing)
	text := draft.Text()
	if text == "" {
		return nil, ErrEmptyContent
	}
	limit := f.opts.Base + TextLen(text)

	lastFlat := -1
	for i, ln := range draft.Lines {
		if ln.Marker != MarkerTable {
			lastFlat = i
		}
	}

	acc := accumulator{cursor: f.opts.Base}
	for pos, ln := range draft.Lines {
		if ln.Marker == MarkerTable {
			acc = acc.pushTableLine(pos, ln)
			continue
		}
		acc = f.flushTable(acc)
		acc = f.formatLine(acc, pos, ln, limit, pos == lastFlat)
	}
	acc = f.flushTable(acc)

	ops := acc.ops
	for i := len(acc.blocks) - 1; i >= 0; i-- {
		ops = append(ops, f.tableOps(acc.blocks[i], limit)...)
	}

	return &Result{
		Title:      title,
		Base:       f.opts.Base,
		Text:       text,
		Operations: ops,
		Lines:      acc.lines,
	}, nil
}

// formatLine styles one flat line and advances the cursor past it and its
// separator.
func (f *Formatter) formatLine(acc accumulator, pos int, ln Line, limit int, last bool) accumulator {
	start := acc.cursor
	end := start + TextLen(ln.Text)

	next := end + 1
	if !last && f.opts.Spacing == SpacingDouble {
		next++
	}

	out := LineOutcome{Index: pos, Text: ln.Text, Range: Range{Start: start, End: end}}
	class, ops, err := f.lineOps(pos, ln, out.Range, limit)
	out.Kind = class.Kind
	if out.Kind == "" {
		out.Kind = KindParagraph
	}
	if err != nil {
		out.Skipped = true
		out.Reason = err.Error()
	} else {
		out.Ops = len(ops)
		acc.ops = append(acc.ops, ops...)
	}

	acc.lines = append(acc.lines, out)
	acc.cursor = next
	return acc
}

// lineOps classifies a line and builds its operations in paragraph,
// bullet, text order. Panics raised by rule predicates become errors.
func (f *Formatter) lineOps(pos int, ln Line, r Range, limit int) (class Class, ops []Operation, err error) {
	defer func() {
		if p := recover(); p != nil {
			ops = nil
			err = fmt.Errorf("formatting line %d: %v", pos, p)
		}
	}()

	class = Classify(f.opts.Rules, pos, ln)
	if class.Kind == KindTableRow {
		return class, nil, fmt.Errorf("table row outside a table block")
	}

	r, ok := clip(r, f.opts.Base, limit)
	if !ok {
		return class, nil, fmt.Errorf("range [%d,%d) outside text bounds [%d,%d)", r.Start, r.End, f.opts.Base, limit)
	}

	style, ok := f.opts.Styles[class.Role()]
	if !ok {
		return class, nil, fmt.Errorf("no style for role %q", class.Role())
	}

	if style.Paragraph != nil && len(style.Paragraph.Fields()) > 0 {
		p := *style.Paragraph
		ops = append(ops, Operation{Kind: OpParagraphStyle, Line: pos, Range: rangeRef(r), Paragraph: &p})
	}
	if style.Bullet != "" {
		ops = append(ops, Operation{Kind: OpBullets, Line: pos, Range: rangeRef(r), Bullet: style.Bullet})
	}
	if style.Text != nil {
		t := *style.Text
		ops = append(ops, Operation{Kind: OpTextStyle, Line: pos, Range: rangeRef(r), Text: &t})
	}
	return class, ops, nil
}

func rangeRef(r Range) *Range { return &r }
