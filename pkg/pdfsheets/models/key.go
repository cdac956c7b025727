package models

import (
	"strconv"
	"strings"
)

// MergeKey identifies tables that represent the same logical table.
// The zero value is the "no merge" key; such tables are never merged.
type MergeKey struct {
	// Enabled is false for the "no merge" key.
	Enabled bool
	// HasTitle distinguishes a missing title from an empty one.
	HasTitle bool
	// Title is the table title when HasTitle is set.
	Title string
	// Columns encodes the column tuple; see EncodeColumns.
	Columns string
}

// IsNone reports whether k is the "no merge" key.
func (k MergeKey) IsNone() bool {
	return !k.Enabled
}

// EncodeColumns encodes a column tuple so that two tuples encode equally
// only when they have the same length and equal elements in order.
func EncodeColumns(columns []string) string {
	var sb strings.Builder
	for _, c := range columns {
		sb.WriteString(strconv.Itoa(len(c)))
		sb.WriteByte(':')
		sb.WriteString(c)
	}
	return sb.String()
}
