package pdfsheets

import (
	"errors"
	"fmt"

	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/parser"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/partition"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/pdfgrid"
)

// ErrUnreadableDocument indicates the input is not a readable PDF.
var ErrUnreadableDocument = pdfgrid.ErrUnreadableDocument

// ErrInvalidPageRange indicates a malformed page selection.
var ErrInvalidPageRange = parser.ErrInvalidPageRange

// ErrInvalidSheetLimit indicates a max-sheets value that is not a positive
// number.
var ErrInvalidSheetLimit = partition.ErrInvalidSheetLimit

// ErrNoTablesFound indicates that no table was detected on the selected pages.
var ErrNoTablesFound = errors.New("no tables found")

// PageError represents a table extraction failure on a page.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("extraction error on page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// NewPageError creates a new PageError.
func NewPageError(page int, err error) *PageError {
	return &PageError{
		Page: page,
		Err:  err,
	}
}
