// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		spacing Spacing
		want    string
	}{
		{
			name: "collapses blank lines",
			raw:  "A\n\n\n\nB\n",
			want: "A\nB\n",
		},
		{
			name:    "double spacing",
			raw:     "A\nB\n\n\nC",
			spacing: SpacingDouble,
			want:    "A\n\nB\n\nC\n",
		},
		{
			name: "strips emphasis",
			raw:  "**Title**\nThis is *really* __important__ text",
			want: "Title\nThis is really important text\n",
		},
		{
			name: "strips structural markup",
			raw:  "# Head\n## Sub\n> quote\n- item\n* star",
			want: "Head\nSub\nquote\nitem\nstar\n",
		},
		{
			name: "trims and unifies line endings",
			raw:  "  A  \r\n\tB\rC",
			want: "A\nB\nC\n",
		},
		{
			name: "drops horizontal rules",
			raw:  "A\n---\n* * *\nB",
			want: "A\nB\n",
		},
		{
			name: "keeps signature underscores",
			raw:  "Title\nSignature: ______________",
			want: "Title\nSignature: ______________\n",
		},
		{
			name: "keeps underscore-only signature line",
			raw:  "Agreement\nClause 1: Pay\nSignature:\n______________________\nParty A\n---\nDate",
			want: "Agreement\nClause 1: Pay\nSignature:\n______________________\nParty A\nDate\n",
		},
		{
			name: "keeps intra-word asterisks and underscores",
			raw:  "Title\nprice is 5*x*2 today\nsee file__name__v2 and snake_case_id\na**b**c",
			want: "Title\nprice is 5*x*2 today\nsee file__name__v2 and snake_case_id\na**b**c\n",
		},
		{
			name: "strips emphasis next to punctuation",
			raw:  "Title\n(*note*), ***both*** and **bold *inner* text**.",
			want: "Title\n(note), both and bold inner text.\n",
		},
		{
			name: "hash without space is not a heading",
			raw:  "Title\n#hashtag trending\n#1 priority",
			want: "Title\n#hashtag trending\n#1 priority\n",
		},
		{
			name: "strips repeated leading markers",
			raw:  "Title\n- - nested\n> > deep quote\n* - mixed\n## - heading bullet",
			want: "Title\nnested\ndeep quote\nmixed\nheading bullet\n",
		},
		{
			name: "drops bare heading marker",
			raw:  "Title\n##\nBody",
			want: "Title\nBody\n",
		},
		{
			name: "excludes table rows after the first line",
			raw:  "Title\n| A | B |\n| C | D |\nEnd",
			want: "Title\nEnd\n",
		},
		{
			name: "first line pipe row stays text",
			raw:  "| A | B |\nBody",
			want: "| A | B |\nBody\n",
		},
		{
			name: "empty",
			raw:  "\n\n   \n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Normalize(tt.raw, tt.spacing)
			assert.Equal(t, tt.want, d.Text())
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"My Title\nClause 1: Pay $500\n\nSignature: ____",
		"**Agreement**\n\nThis agreement is *binding*.\n\n1. Payment\n2. Delivery",
		"# Essay\n## Part one\n> quoted line\n- a\n- b\n| x | y |\nclosing",
		"Ünïcödé 🚀\n\n\ntext",
		"Title\n- - nested\n> > deep\n#hashtag trending",
		"Title\nprice is 5*x*2 today\n______________\nfile__name__v2",
		"Title\n**bold *inner* text** and ***both***",
	}
	for _, spacing := range []Spacing{SpacingSingle, SpacingDouble} {
		for _, in := range inputs {
			once := Normalize(in, spacing).Text()
			twice := Normalize(once, spacing).Text()
			assert.Equal(t, once, twice, "input %q spacing %s", in, spacing)
		}
	}
}

func TestNormalizeMarkers(t *testing.T) {
	d := Normalize("Title\n### Deep\n#### Deeper\n> q\n- b\n**Bold line**\n| a | b | c |", SpacingSingle)
	require.Len(t, d.Lines, 7)

	assert.Equal(t, MarkerNone, d.Lines[0].Marker)
	assert.Equal(t, MarkerHeading, d.Lines[1].Marker)
	assert.Equal(t, 3, d.Lines[1].Level)
	assert.Equal(t, 3, d.Lines[2].Level)
	assert.Equal(t, MarkerQuote, d.Lines[3].Marker)
	assert.Equal(t, MarkerBullet, d.Lines[4].Marker)
	assert.Equal(t, MarkerBold, d.Lines[5].Marker)
	assert.Equal(t, "Bold line", d.Lines[5].Text)
	assert.Equal(t, MarkerTable, d.Lines[6].Marker)
	assert.Equal(t, []string{"a", "b", "c"}, d.Lines[6].Cells)
}

func TestNormalizeMarkers_NoSpaceAfterHash(t *testing.T) {
	d := Normalize("Title\n#hashtag trending\n- - nested", SpacingSingle)
	require.Len(t, d.Lines, 3)

	assert.Equal(t, MarkerNone, d.Lines[1].Marker)
	assert.Equal(t, "#hashtag trending", d.Lines[1].Text)
	assert.Equal(t, MarkerBullet, d.Lines[2].Marker)
	assert.Equal(t, "nested", d.Lines[2].Text)
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"| A | B |", []string{"A", "B"}},
		{"| A | B", []string{"A", "B"}},
		{"| C", []string{"C"}},
		{"|", []string{}},
		{"| **Bold** | x |", []string{"Bold", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCells(tt.in))
		})
	}
}

func TestIsSeparatorRow(t *testing.T) {
	assert.True(t, isSeparatorRow([]string{"---", ":---:"}))
	assert.False(t, isSeparatorRow([]string{"---", "text"}))
	assert.False(t, isSeparatorRow(nil))
}

func TestMarkerString(t *testing.T) {
	assert.Equal(t, "heading", MarkerHeading.String())
	assert.Equal(t, "unknown", Marker(99).String())
}

func TestParseSpacing(t *testing.T) {
	for in, want := range map[string]Spacing{"": SpacingSingle, "single": SpacingSingle, " Double ": SpacingDouble} {
		got, err := ParseSpacing(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSpacing("triple")
	assert.Error(t, err)
}
