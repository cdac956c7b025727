package pdfsheets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/merge"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/models"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/output"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/parser"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/partition"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/pdfgrid"
)

// Source yields the raw tables detected on each page of a document.
type Source interface {
	// PageCount returns the number of pages.
	PageCount() int
	// ExtractTables returns the tables on a page (1-based).
	ExtractTables(page int) ([]models.RawTable, error)
}

// Result is the outcome of a batch run.
type Result struct {
	// BaseName is the source name the output files are named after.
	BaseName string
	// Units holds the workbooks to write, in order.
	Units []models.OutputUnit
	// Tables holds the accumulated tables in first-encounter order.
	Tables []*models.AccumulatedTable
	// PagesWithTables counts the pages that yielded at least one table.
	PagesWithTables int
	// SkippedPages lists pages whose extraction failed when
	// Options.SkipFailedPages is set.
	SkippedPages []int
}

// Extract extracts and merges the tables of the PDF file at path.
func Extract(path string, opts Options) (*Result, error) {
	doc, err := pdfgrid.OpenFile(path, opts.gridParams())
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pages, err := parser.ParsePageRange(opts.Pages, doc.PageCount())
	if err != nil {
		return nil, err
	}

	return Run(doc, pages, BaseName(path), opts)
}

// Run processes pages of src in order, merges their tables and partitions
// the result into output units named after baseName.
//
// By default the first page error aborts the run and no output is returned.
// It returns ErrNoTablesFound when no page yields a table.
func Run(src Source, pages []int, baseName string, opts Options) (*Result, error) {
	log := opts.logger()
	mergeEnabled := opts.ShouldMerge()
	store := merge.NewStore()
	result := &Result{BaseName: baseName}

	for i, page := range pages {
		raws, err := src.ExtractTables(page)
		if err != nil {
			if !opts.SkipFailedPages {
				return nil, NewPageError(page, err)
			}
			log.WithFields(logrus.Fields{"page": page}).WithError(err).Warn("skipping page")
			result.SkippedPages = append(result.SkippedPages, page)
			reportProgress(opts.Progress, i+1, len(pages))
			continue
		}

		found := 0
		for _, raw := range raws {
			table, ok := parser.Normalize(raw)
			if !ok {
				continue
			}
			found++

			key := merge.ResolveKey(table, mergeEnabled)
			merged := store.Accumulate(key, table)
			log.WithFields(logrus.Fields{
				"page":    page,
				"columns": len(table.Columns),
				"rows":    len(table.Rows),
				"title":   table.TitleDetected,
				"merged":  merged,
			}).Debug("table")
		}
		if found > 0 {
			result.PagesWithTables++
		}
		log.WithFields(logrus.Fields{"page": page, "tables": found}).Debug("page done")
		reportProgress(opts.Progress, i+1, len(pages))
	}

	if store.Len() == 0 {
		return nil, ErrNoTablesFound
	}
	result.Tables = store.Entries()

	units, err := partition.Partition(result.Tables, partition.Config{
		MaxSheets:  opts.SheetLimit(),
		Split:      opts.ShouldSplit(),
		BaseName:   baseName,
		Pages:      pages,
		PageSubset: parser.IsSubset(pages, src.PageCount()),
	})
	if err != nil {
		return nil, err
	}
	result.Units = units

	log.WithFields(logrus.Fields{
		"pages":  result.PagesWithTables,
		"tables": len(result.Tables),
		"files":  len(units),
	}).Info("extraction complete")

	return result, nil
}

// Files renders every output unit of r to xlsx.
func Files(r *Result) ([]output.Entry, error) {
	entries := make([]output.Entry, 0, len(r.Units))
	for _, unit := range r.Units {
		data, err := output.WriteWorkbook(unit)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", unit.FileName, err)
		}
		entries = append(entries, output.Entry{Name: unit.FileName, Data: data})
	}
	return entries, nil
}

// BaseName returns the file name of path without directory and extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func reportProgress(fn ProgressFunc, done, total int) {
	if fn != nil {
		fn(done, total)
	}
}

func (o Options) gridParams() pdfgrid.Params {
	if o.Grid == (pdfgrid.Params{}) {
		return pdfgrid.DefaultParams()
	}
	return o.Grid
}
