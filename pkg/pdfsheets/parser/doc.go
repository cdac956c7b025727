// Package parser turns raw PDF table grids into normalized tables and
// provides the text helpers used around them: page-range parsing and
// spreadsheet sheet-name sanitization.
package parser

// MaxSheetNameLength is the maximum sheet name length accepted by Excel,
// counted in characters.
const MaxSheetNameLength = 31

// DefaultSheetName is used when a title sanitizes to an empty string.
const DefaultSheetName = "Sheet1"
