// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gdocs

import (
	"fmt"
	"strings"

	"google.golang.org/api/docs/v1"

	"github.com/pdiddy/promptdoc/internal/formatter"
)

const unitPT = "PT"

// Requests converts a formatter result into Docs API requests: one text
// insertion at the result's base index, then one or two requests per
// operation in the order the formatter emitted them.
func Requests(res *formatter.Result) ([]*docs.Request, error) {
	reqs := []*docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: int64(res.Base)},
			Text:     res.Text,
		},
	}}

	for i, op := range res.Operations {
		converted, err := convert(op)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Kind, err)
		}
		reqs = append(reqs, converted...)
	}
	return reqs, nil
}

func convert(op formatter.Operation) ([]*docs.Request, error) {
	switch op.Kind {
	case formatter.OpParagraphStyle:
		if op.Range == nil || op.Paragraph == nil {
			return nil, fmt.Errorf("missing range or paragraph style")
		}
		return []*docs.Request{{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range:          docsRange(*op.Range),
				ParagraphStyle: paragraphStyle(*op.Paragraph),
				Fields:         strings.Join(op.Paragraph.Fields(), ","),
			},
		}}, nil

	case formatter.OpTextStyle:
		if op.Range == nil || op.Text == nil {
			return nil, fmt.Errorf("missing range or text style")
		}
		return []*docs.Request{textStyleRequest(*op.Range, *op.Text)}, nil

	case formatter.OpBullets:
		if op.Range == nil {
			return nil, fmt.Errorf("missing range")
		}
		return []*docs.Request{{
			CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
				Range:        docsRange(*op.Range),
				BulletPreset: op.Bullet,
			},
		}}, nil

	case formatter.OpInsertTable:
		if op.Table == nil {
			return nil, fmt.Errorf("missing table")
		}
		return []*docs.Request{{
			InsertTable: &docs.InsertTableRequest{
				Location: &docs.Location{Index: int64(op.Table.Location)},
				Rows:     int64(op.Table.Rows),
				Columns:  int64(op.Table.Columns),
			},
		}}, nil

	case formatter.OpTableCell:
		if op.Cell == nil {
			return nil, fmt.Errorf("missing cell")
		}
		at := op.Cell.CellIndex()
		reqs := []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: int64(at)},
				Text:     op.Cell.Text,
			},
		}}
		if op.Text != nil {
			r := formatter.Range{Start: at, End: at + formatter.TextLen(op.Cell.Text)}
			reqs = append(reqs, textStyleRequest(r, *op.Text))
		}
		return reqs, nil

	default:
		return nil, fmt.Errorf("unknown operation kind")
	}
}

func docsRange(r formatter.Range) *docs.Range {
	return &docs.Range{StartIndex: int64(r.Start), EndIndex: int64(r.End)}
}

func points(v float64) *docs.Dimension {
	if v <= 0 {
		return nil
	}
	return &docs.Dimension{Magnitude: v, Unit: unitPT}
}

func paragraphStyle(p formatter.ParagraphStyle) *docs.ParagraphStyle {
	ps := &docs.ParagraphStyle{
		NamedStyleType: p.NamedStyle,
		Alignment:      p.Alignment,
		LineSpacing:    p.LineSpacing,
		SpaceAbove:     points(p.SpaceAbove),
		SpaceBelow:     points(p.SpaceBelow),
		IndentStart:    points(p.IndentStart),
	}
	if p.Shading != nil {
		ps.Shading = &docs.Shading{
			BackgroundColor: &docs.OptionalColor{
				Color: &docs.Color{
					RgbColor: &docs.RgbColor{
						Red:   p.Shading.Red,
						Green: p.Shading.Green,
						Blue:  p.Shading.Blue,
					},
				},
			},
		}
	}
	return ps
}

// textStyleRequest always sends bold and italic, including false values,
// so regular roles clear weight inherited from a neighbouring style.
func textStyleRequest(r formatter.Range, t formatter.TextStyle) *docs.Request {
	ts := &docs.TextStyle{
		Bold:            t.Bold,
		Italic:          t.Italic,
		FontSize:        points(t.FontSize),
		ForceSendFields: []string{"Bold", "Italic"},
	}
	if t.FontFamily != "" {
		ts.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: t.FontFamily}
	}
	return &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     docsRange(r),
			TextStyle: ts,
			Fields:    strings.Join(t.Fields(), ","),
		},
	}
}
