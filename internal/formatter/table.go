// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formatter

import "fmt"

// tableBlock is a run of consecutive pipe-delimited lines. It is rendered
// as one table inserted at location, the index of the paragraph that
// followed the run.
type tableBlock struct {
	location int
	firstPos int
	rows     [][]string
	rowPos   []int
}

func (acc accumulator) pushTableLine(pos int, ln Line) accumulator {
	acc.run = append(acc.run, indexedLine{pos: pos, ln: ln})
	return acc
}

// flushTable closes the pending run, if any. Well-formed rows are kept up
// to MaxTableRows; malformed and overflow rows are reported as skipped and
// markdown separator rows are consumed silently.
func (f *Formatter) flushTable(acc accumulator) accumulator {
	if len(acc.run) == 0 {
		return acc
	}

	block := tableBlock{location: acc.cursor, firstPos: acc.run[0].pos}
	outcomes := make([]LineOutcome, 0, len(acc.run))

	for _, il := range acc.run {
		out := LineOutcome{
			Index: il.pos,
			Text:  il.ln.Text,
			Kind:  KindTableRow,
			Range: Range{Start: acc.cursor, End: acc.cursor},
		}
		switch {
		case isSeparatorRow(il.ln.Cells):
		case len(il.ln.Cells) < f.opts.TableColumns:
			out.Skipped = true
			out.Reason = fmt.Sprintf("table row has %d cell(s), need %d", len(il.ln.Cells), f.opts.TableColumns)
		case len(block.rows) >= f.opts.MaxTableRows:
			out.Skipped = true
			out.Reason = fmt.Sprintf("table row limit %d reached", f.opts.MaxTableRows)
		default:
			block.rows = append(block.rows, il.ln.Cells[:f.opts.TableColumns])
			block.rowPos = append(block.rowPos, il.pos)
			out.Ops = countCells(il.ln.Cells[:f.opts.TableColumns])
			if len(block.rows) == 1 {
				out.Ops++
			}
		}
		outcomes = append(outcomes, out)
	}

	acc.lines = append(acc.lines, outcomes...)
	if len(block.rows) > 0 {
		acc.blocks = append(acc.blocks, block)
	}
	acc.run = nil
	return acc
}

// tableOps emits the table insertion followed by one cell operation per
// non-empty cell, last cell first, so each cell index is computed against
// a table whose earlier cells are still empty.
func (f *Formatter) tableOps(b tableBlock, limit int) []Operation {
	if b.location < f.opts.Base || b.location > limit {
		return nil
	}

	cols := f.opts.TableColumns
	ops := []Operation{{
		Kind: OpInsertTable,
		Line: b.firstPos,
		Table: &TableInsert{
			Location: b.location,
			Rows:     len(b.rows),
			Columns:  cols,
		},
	}}

	for r := len(b.rows) - 1; r >= 0; r-- {
		role := RoleTableCell
		if r == 0 {
			role = RoleTableHeader
		}
		style := f.opts.Styles[role]
		for c := cols - 1; c >= 0; c-- {
			text := b.rows[r][c]
			if text == "" {
				continue
			}
			op := Operation{
				Kind: OpTableCell,
				Line: b.rowPos[r],
				Cell: &TableCell{
					Location: b.location,
					Columns:  cols,
					Row:      r,
					Column:   c,
					Text:     text,
				},
			}
			if style.Text != nil {
				t := *style.Text
				op.Text = &t
			}
			ops = append(ops, op)
		}
	}
	return ops
}

func countCells(cells []string) int {
	n := 0
	for _, c := range cells {
		if c != "" {
			n++
		}
	}
	return n
}
