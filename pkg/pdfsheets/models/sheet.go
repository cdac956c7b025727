package models

// Sheet is one named worksheet of an output workbook.
type Sheet struct {
	// Name is the sanitized, unique sheet name.
	Name string `json:"name"`
	// Table is the accumulated table written to the sheet.
	Table *AccumulatedTable `json:"-"`
}
