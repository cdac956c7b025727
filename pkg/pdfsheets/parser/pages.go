package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPageRange indicates a malformed page-range expression.
var ErrInvalidPageRange = errors.New("invalid page range")

var pageSeparators = regexp.MustCompile(`[,\s]+`)

// ParsePageRange parses a page selection such as "1,3,5-7" against a
// document with total pages.
//
// Tokens are separated by commas and/or whitespace and are either a single
// page "N" or an inclusive range "N-M". Pages outside [1, total] are dropped
// silently; duplicates and input order are kept. A single malformed token
// rejects the whole input. Blank text selects every page.
func ParsePageRange(text string, total int) ([]int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return AllPages(total), nil
	}

	pages := []int{}
	for _, token := range pageSeparators.Split(text, -1) {
		if token == "" {
			continue
		}

		first, last, err := parsePageToken(token)
		if err != nil {
			return nil, err
		}

		for p := max(first, 1); p <= min(last, total); p++ {
			pages = append(pages, p)
		}
	}

	return pages, nil
}

// parsePageToken parses "N" or "N-M".
func parsePageToken(token string) (int, int, error) {
	startStr, endStr, isRange := strings.Cut(token, "-")

	first, err := parsePageNumber(startStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPageRange, token)
	}
	if !isRange {
		return first, first, nil
	}

	last, err := parsePageNumber(endStr)
	if err != nil || last < first {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPageRange, token)
	}

	return first, last, nil
}

// parsePageNumber accepts unsigned decimal digits only.
func parsePageNumber(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, fmt.Errorf("not a page number: %q", s)
	}
	return strconv.Atoi(s)
}

// AllPages returns 1..total.
func AllPages(total int) []int {
	pages := make([]int, 0, max(total, 0))
	for p := 1; p <= total; p++ {
		pages = append(pages, p)
	}
	return pages
}

// IsSubset reports whether pages is anything other than exactly 1..total.
func IsSubset(pages []int, total int) bool {
	if len(pages) != total {
		return true
	}
	for i, p := range pages {
		if p != i+1 {
			return true
		}
	}
	return false
}
