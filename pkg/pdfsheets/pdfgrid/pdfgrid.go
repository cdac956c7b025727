// Package pdfgrid reads a PDF document and detects text grids on its pages,
// producing raw tables for normalization.
package pdfgrid

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/models"
)

// ErrUnreadableDocument indicates the input is not a readable PDF.
var ErrUnreadableDocument = errors.New("unreadable document")

// Document is an opened PDF.
type Document struct {
	reader *pdf.Reader
	params Params
}

// Open parses PDF content held in memory.
func Open(data []byte, params Params) (doc *Document, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty content", ErrUnreadableDocument)
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	return &Document{reader: r, params: params}, nil
}

// OpenFile reads and parses the PDF at path.
func OpenFile(path string, params Params) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Open(data, params)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	if d.reader == nil {
		return 0
	}
	return d.reader.NumPage()
}

// ExtractTables detects the tables on a page (1-based). A page without
// tables yields an empty slice.
func (d *Document) ExtractTables(page int) (tables []models.RawTable, err error) {
	defer func() {
		if r := recover(); r != nil {
			tables, err = nil, fmt.Errorf("read page %d content: %v", page, r)
		}
	}()

	if page < 1 || page > d.PageCount() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", page, d.PageCount())
	}

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	return DetectTables(p.Content().Text, d.params), nil
}

// Close releases the document.
func (d *Document) Close() error {
	d.reader = nil
	return nil
}
