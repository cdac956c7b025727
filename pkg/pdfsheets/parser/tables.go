package parser

import (
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/models"
)

// Normalize separates the title, header and data rows of a raw table.
// It returns false when the table has no non-blank rows.
//
// A first row with strictly fewer filled cells than the second is taken as a
// title row (typically a merged cell spanning the table) and the second row
// becomes the header. Otherwise the first row is the header.
func Normalize(raw models.RawTable) (models.NormalizedTable, bool) {
	rows := dropBlankRows(raw)
	if len(rows) == 0 {
		return models.NormalizedTable{}, false
	}

	width := rows.Width()
	var t models.NormalizedTable
	header, data := 0, 1

	if len(rows) > 1 && countCells(rows[0], width) < countCells(rows[1], width) {
		t.TitleDetected = true
		if len(rows[0]) > 0 && rows[0][0] != nil {
			t.Title = models.Text(*rows[0][0])
		}
		header, data = 1, 2
	}

	t.Columns = padRow(rows[header], width)
	for _, row := range rows[data:] {
		t.Rows = append(t.Rows, cellStrings(row))
	}

	return t, true
}

// dropBlankRows removes rows whose cells are all nil or whitespace.
func dropBlankRows(raw models.RawTable) models.RawTable {
	var kept models.RawTable
	for _, row := range raw {
		for _, cell := range row {
			if !models.IsBlank(cell) {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}

// countCells counts non-nil cells within the first width columns.
// Whitespace-only cells count as present.
func countCells(row []*string, width int) int {
	count := 0
	for colIdx := 0; colIdx < width && colIdx < len(row); colIdx++ {
		if row[colIdx] != nil {
			count++
		}
	}
	return count
}

// padRow converts row to strings and extends it with empty columns to width.
func padRow(row []*string, width int) []string {
	out := cellStrings(row)
	for len(out) < width {
		out = append(out, "")
	}
	return out
}

func cellStrings(row []*string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		if cell != nil {
			out[i] = *cell
		}
	}
	return out
}
