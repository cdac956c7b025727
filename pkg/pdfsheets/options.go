// Package pdfsheets extracts tables from PDF documents into xlsx workbooks,
// merging tables that repeat across pages.
package pdfsheets

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/pdfgrid"
)

// DefaultMaxSheets is the default number of sheets per workbook.
const DefaultMaxSheets = 25

// ProgressFunc is called after each page with the number of pages done and
// the total number of pages selected.
type ProgressFunc func(done, total int)

// Options configures extraction behavior.
type Options struct {
	// Pages is the page selection text, e.g. "1,3,5-7". Empty selects every page.
	Pages string
	// MergeTables merges tables sharing the same title and columns.
	// If nil, defaults to true.
	MergeTables *bool
	// Split splits output across workbooks of at most MaxSheets sheets.
	// If nil, defaults to true.
	Split *bool
	// MaxSheets bounds the sheets per workbook. Zero means DefaultMaxSheets.
	MaxSheets int
	// SkipFailedPages skips pages whose extraction fails instead of aborting
	// the batch.
	SkipFailedPages bool
	// Grid holds the PDF grid detection parameters.
	Grid pdfgrid.Params
	// Progress, if set, is called after each page.
	Progress ProgressFunc
	// Logger receives diagnostic output. If nil, logging is discarded.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		MaxSheets: DefaultMaxSheets,
		Grid:      pdfgrid.DefaultParams(),
	}
}

// ShouldMerge returns whether to merge tables with the same identity.
func (o Options) ShouldMerge() bool {
	if o.MergeTables != nil {
		return *o.MergeTables
	}
	return true
}

// ShouldSplit returns whether to split output across workbooks.
func (o Options) ShouldSplit() bool {
	if o.Split != nil {
		return *o.Split
	}
	return true
}

// SheetLimit returns the effective max sheets per workbook.
func (o Options) SheetLimit() int {
	if o.MaxSheets == 0 {
		return DefaultMaxSheets
	}
	return o.MaxSheets
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// ParseMaxSheets parses a max-sheets value. Text that is not a positive
// integer yields DefaultMaxSheets together with ErrInvalidSheetLimit.
func ParseMaxSheets(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.TrimLeft(text, "0123456789") != "" {
		return DefaultMaxSheets, fmt.Errorf("%w: %q", ErrInvalidSheetLimit, text)
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return DefaultMaxSheets, fmt.Errorf("%w: %q", ErrInvalidSheetLimit, text)
	}
	return n, nil
}

// Bool returns a pointer to b, for the optional Options fields.
func Bool(b bool) *bool {
	return &b
}
