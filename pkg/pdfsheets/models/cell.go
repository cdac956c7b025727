// Package models defines data structures for PDF table extraction.
package models

import "strings"

// RawTable is a grid of nullable cell strings as detected on a single page.
// Rows may have different lengths; a nil cell means no text was found there.
type RawTable [][]*string

// Text returns a pointer to s, for building RawTable cells.
func Text(s string) *string {
	return &s
}

// Row builds a RawTable row from strings, treating "" as a missing cell.
func Row(cells ...string) []*string {
	row := make([]*string, len(cells))
	for i, c := range cells {
		if c != "" {
			row[i] = Text(c)
		}
	}
	return row
}

// IsBlank reports whether the cell is nil or contains only whitespace.
func IsBlank(cell *string) bool {
	return cell == nil || strings.TrimSpace(*cell) == ""
}

// Width returns the length of the longest row.
func (t RawTable) Width() int {
	w := 0
	for _, row := range t {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
