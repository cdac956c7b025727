package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// invalidSheetChars are the characters Excel rejects in sheet names.
var invalidSheetChars = strings.NewReplacer(
	"/", "", "\\", "", "?", "", "*", "", "[", "", "]", "", ":", "",
)

// SanitizeSheetName makes a table title usable as a sheet name.
// Illegal characters are removed and the result is truncated to
// MaxSheetNameLength characters. An empty result falls back to
// DefaultSheetName.
func SanitizeSheetName(name string) string {
	name = norm.NFC.String(name)
	name = trimSheetName(invalidSheetChars.Replace(name))
	name = trimSheetName(TruncateSheetName(name, MaxSheetNameLength))
	if name == "" {
		return DefaultSheetName
	}
	return name
}

// TruncateSheetName truncates name to at most n characters.
func TruncateSheetName(name string, n int) string {
	runes := []rune(name)
	if len(runes) <= n {
		return name
	}
	return string(runes[:n])
}

// trimSheetName strips surrounding whitespace and apostrophes; Excel refuses
// names that begin or end with an apostrophe.
func trimSheetName(name string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(name), "'"))
}
