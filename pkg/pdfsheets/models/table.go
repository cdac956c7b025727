package models

// NormalizedTable is a raw table with its title and header separated from
// the data rows.
type NormalizedTable struct {
	// Title is the first cell of the detected title row (nil if no title row
	// was detected or its first cell was empty).
	Title *string
	// TitleDetected reports whether the density heuristic picked a title row.
	TitleDetected bool
	// Columns is the header row, used verbatim. Duplicates are allowed.
	Columns []string
	// Rows holds the data rows. A row may be shorter than Columns.
	Rows [][]string
}

// HasTitle reports whether the table carries a usable title.
func (t NormalizedTable) HasTitle() bool {
	return t.Title != nil
}

// AccumulatedTable holds the rows of every table merged under one key.
type AccumulatedTable struct {
	// Label is the store label: the title for titled keys, Table_{n} otherwise.
	Label string
	// Key is the merge key the table was stored under.
	Key MergeKey
	// Title is the title shared by every merged table, if any.
	Title *string
	// Columns is the header row written above Rows.
	Columns []string
	// Rows contains the merged rows, including the synthetic title row when
	// one was materialized.
	Rows [][]string
	// Sources counts the normalized tables merged into this entry.
	Sources int
}
