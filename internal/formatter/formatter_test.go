// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opsForLine(res *Result, line int) []Operation {
	var out []Operation
	for _, op := range res.Operations {
		if op.Line == line {
			out = append(out, op)
		}
	}
	return out
}

func TestFormat_AgreementExample(t *testing.T) {
	res, err := Format("Agreement", "My Title\nClause 1: Pay $500\n\nSignature: ____")
	require.NoError(t, err)

	assert.Equal(t, "Agreement", res.Title)
	assert.Equal(t, "My Title\nClause 1: Pay $500\nSignature: ____\n", res.Text)
	require.Len(t, res.Lines, 3)

	title := opsForLine(res, 0)
	require.Len(t, title, 2)
	assert.Equal(t, OpParagraphStyle, title[0].Kind)
	assert.Equal(t, "CENTER", title[0].Paragraph.Alignment)
	assert.Equal(t, Range{Start: 1, End: 9}, *title[0].Range)
	assert.Equal(t, OpTextStyle, title[1].Kind)
	assert.True(t, title[1].Text.Bold)
	assert.Equal(t, Range{Start: 1, End: 9}, *title[1].Range)

	clause := opsForLine(res, 1)
	require.Len(t, clause, 2)
	assert.Equal(t, KindClause, res.Lines[1].Kind)
	assert.Equal(t, Range{Start: 10, End: 28}, *clause[0].Range)

	sig := opsForLine(res, 2)
	require.Len(t, sig, 2)
	assert.Equal(t, KindSignature, res.Lines[2].Kind)
	assert.Equal(t, Range{Start: 29, End: 44}, *sig[0].Range)
	assert.Equal(t, 12.0, sig[0].Paragraph.SpaceAbove)

	assert.Empty(t, res.Skipped())
}

func TestFormat_RangesStayInBounds(t *testing.T) {
	inputs := []string{
		"Title\nplain",
		"# Heading\n\n\n## Sub\n> quoted\n- bullet\n* star bullet\n1. numbered\n",
		"Ünïcödé title 🚀\nemoji 👍🏽 line\n**bold**\n",
		"T\n| a | b |\n| c | d |\ntrailing",
		"   \n\n  spaced title  \n\t tabbed\n",
	}
	for _, spacing := range []Spacing{SpacingSingle, SpacingDouble} {
		f := New(Options{Spacing: spacing})
		for _, in := range inputs {
			res, err := f.Format("doc", in)
			require.NoError(t, err, in)
			limit := res.Base + TextLen(res.Text)
			for _, op := range res.Operations {
				if op.Range != nil {
					assert.GreaterOrEqual(t, op.Range.Start, res.Base, in)
					assert.Less(t, op.Range.Start, op.Range.End, in)
					assert.LessOrEqual(t, op.Range.End, limit, in)
				}
				if op.Table != nil {
					assert.GreaterOrEqual(t, op.Table.Location, res.Base, in)
					assert.LessOrEqual(t, op.Table.Location, limit, in)
				}
			}
		}
	}
}

func TestFormat_NoContentLossOrDuplication(t *testing.T) {
	// Each source line paired with the text it should render as. An empty
	// want means the line is a rule or a table row and leaves the flat text.
	source := []struct {
		raw  string
		want string
	}{
		{"Agreement", "Agreement"},
		{"Clause 1: Pay $500 within 5*x*2 days", "Clause 1: Pay $500 within 5*x*2 days"},
		{"Signature:", "Signature:"},
		{"______________________", "______________________"},
		{"Party A", "Party A"},
		{"---", ""},
		{"Date: file_name_v2 due", "Date: file_name_v2 due"},
		{"# Heading", "Heading"},
		{"- - nested bullet", "nested bullet"},
		{"> quote", "quote"},
		{"**Bold** terms", "Bold terms"},
		{"#hashtag trending", "#hashtag trending"},
		{"| Benefit | Impact |", ""},
		{"| --- | --- |", ""},
		{"| *Focus* | High |", ""},
		{"Closing", "Closing"},
	}

	var raw, want []string
	for _, l := range source {
		raw = append(raw, l.raw)
		if l.want != "" {
			want = append(want, l.want)
		}
	}
	in := strings.Join(raw, "\n")

	for _, spacing := range []Spacing{SpacingSingle, SpacingDouble} {
		t.Run(string(spacing), func(t *testing.T) {
			res, err := New(Options{Spacing: spacing}).Format("doc", in)
			require.NoError(t, err)

			sep := "\n"
			if spacing == SpacingDouble {
				sep = "\n\n"
			}
			assert.Equal(t, strings.Join(want, sep)+"\n", res.Text)

			rendered := strings.Split(strings.TrimSuffix(res.Text, "\n"), sep)
			for _, l := range source {
				if l.want == l.raw {
					assert.Contains(t, rendered, l.raw, "plain line must survive verbatim")
				}
			}

			cells := map[[2]int]string{}
			for _, op := range res.Operations {
				if op.Kind == OpTableCell {
					key := [2]int{op.Cell.Row, op.Cell.Column}
					_, dup := cells[key]
					assert.False(t, dup, "cell %v written twice", key)
					cells[key] = op.Cell.Text
				}
			}
			assert.Equal(t, map[[2]int]string{
				{0, 0}: "Benefit",
				{0, 1}: "Impact",
				{1, 0}: "Focus",
				{1, 1}: "High",
			}, cells)
		})
	}
}

func TestFormat_TextAtRangeMatchesLine(t *testing.T) {
	res, err := New(Options{Spacing: SpacingDouble}).Format("doc", "A title\nsecond line\nthird")
	require.NoError(t, err)

	units := []rune(res.Text)
	for _, l := range res.Lines {
		got := string(units[l.Range.Start-res.Base : l.Range.End-res.Base])
		assert.Equal(t, l.Text, got)
	}
}

func TestFormat_FirstLineIsAlwaysTitle(t *testing.T) {
	tests := []string{
		"Clause 1: not a clause here",
		"# Heading",
		"- bullet",
		"...",
		"| a | b |",
		"\n\n  Signature  ",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			res, err := Format("doc", in+"\nbody")
			require.NoError(t, err)
			require.NotEmpty(t, res.Lines)
			assert.Equal(t, KindTitle, res.Lines[0].Kind)
			assert.Equal(t, RoleTitle, Class{Kind: res.Lines[0].Kind}.Role())
		})
	}
}

func TestFormat_Classification(t *testing.T) {
	in := strings.Join([]string{
		"Title",
		"# Big",
		"## Medium",
		"### Small",
		"> a quote",
		"- an item",
		"clause 2: lower case",
		"SIGNATURE: upper case",
		"3. numbered term",
		"Introduction:",
		"**Key Points**",
		"just text",
	}, "\n")
	res, err := Format("doc", in)
	require.NoError(t, err)

	want := []Kind{
		KindTitle, KindSectionHeading, KindSectionHeading, KindSectionHeading,
		KindQuote, KindBulletItem, KindClause, KindSignature, KindClause,
		KindSectionHeading, KindSectionHeading, KindParagraph,
	}
	require.Len(t, res.Lines, len(want))
	for i, k := range want {
		assert.Equal(t, k, res.Lines[i].Kind, "line %d %q", i, res.Lines[i].Text)
	}

	assert.Equal(t, "HEADING_1", opsForLine(res, 1)[0].Paragraph.NamedStyle)
	assert.Equal(t, "HEADING_2", opsForLine(res, 2)[0].Paragraph.NamedStyle)
	assert.Equal(t, "HEADING_3", opsForLine(res, 3)[0].Paragraph.NamedStyle)
	assert.Equal(t, "HEADING_2", opsForLine(res, 9)[0].Paragraph.NamedStyle)
	assert.Equal(t, "HEADING_3", opsForLine(res, 10)[0].Paragraph.NamedStyle)
	assert.True(t, opsForLine(res, 4)[1].Text.Italic)
}

func TestFormat_OperationOrderPerLine(t *testing.T) {
	res, err := Format("doc", "T\n- item")
	require.NoError(t, err)

	ops := opsForLine(res, 1)
	require.Len(t, ops, 2)
	assert.Equal(t, OpBullets, ops[0].Kind)
	assert.Equal(t, "BULLET_DISC_CIRCLE_SQUARE", ops[0].Bullet)
	assert.Equal(t, OpTextStyle, ops[1].Kind)

	res, err = Format("doc", "T\nplain paragraph")
	require.NoError(t, err)
	ops = opsForLine(res, 1)
	require.Len(t, ops, 2)
	assert.Equal(t, OpParagraphStyle, ops[0].Kind)
	assert.Equal(t, 115.0, ops[0].Paragraph.LineSpacing)
	assert.Equal(t, OpTextStyle, ops[1].Kind)
}

func TestFormat_DoubleSpacingCursor(t *testing.T) {
	res, err := New(Options{Spacing: SpacingDouble}).Format("doc", "Title\nBody\nEnd")
	require.NoError(t, err)

	assert.Equal(t, "Title\n\nBody\n\nEnd\n", res.Text)
	assert.Equal(t, Range{Start: 1, End: 6}, res.Lines[0].Range)
	assert.Equal(t, Range{Start: 8, End: 12}, res.Lines[1].Range)
	assert.Equal(t, Range{Start: 14, End: 17}, res.Lines[2].Range)
}

func TestFormat_UTF16Offsets(t *testing.T) {
	res, err := Format("doc", "🚀 Launch\nnext")
	require.NoError(t, err)

	assert.Equal(t, Range{Start: 1, End: 10}, res.Lines[0].Range)
	assert.Equal(t, Range{Start: 11, End: 15}, res.Lines[1].Range)
}

func TestFormat_Errors(t *testing.T) {
	_, err := Format("  ", "text")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = Format("doc", "\n \n**\n---\n")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestFormat_PanickingRuleSkipsLine(t *testing.T) {
	rules := append([]Rule{{
		Name: "explodes",
		Kind: KindParagraph,
		Match: func(_ int, ln Line) bool {
			if ln.Text == "bad line" {
				panic("boom")
			}
			return false
		},
	}}, DefaultRules(nil)...)

	res, err := New(Options{Rules: rules}).Format("doc", "Title\nbad line\nClause 1: fine")
	require.NoError(t, err)

	skipped := res.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Index)
	assert.Contains(t, skipped[0].Reason, "boom")
	assert.Empty(t, opsForLine(res, 1))

	clause := opsForLine(res, 2)
	require.Len(t, clause, 2)
	assert.Equal(t, Range{Start: 16, End: 30}, *clause[0].Range)
}

func TestFormat_MissingStyleSkipsLine(t *testing.T) {
	styles := DefaultStyleSheet()
	delete(styles, RoleQuote)

	res, err := New(Options{Styles: styles}).Format("doc", "Title\n> quote\nafter")
	require.NoError(t, err)

	skipped := res.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, KindQuote, skipped[0].Kind)
	assert.Contains(t, skipped[0].Reason, "no style")
	assert.Len(t, opsForLine(res, 2), 2)
}

func TestClip(t *testing.T) {
	r, ok := clip(Range{Start: 0, End: 50}, 1, 20)
	assert.True(t, ok)
	assert.Equal(t, Range{Start: 1, End: 20}, r)

	_, ok = clip(Range{Start: 25, End: 30}, 1, 20)
	assert.False(t, ok)
}

func TestTextLen(t *testing.T) {
	assert.Equal(t, 5, TextLen("hello"))
	assert.Equal(t, 1, TextLen("é"))
	assert.Equal(t, 2, TextLen("🚀"))
	assert.Equal(t, 0, TextLen(""))
}
