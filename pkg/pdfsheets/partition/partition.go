// Package partition splits accumulated tables into workbook-sized output
// units and names their files and sheets.
package partition

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/models"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/parser"
)

// ErrInvalidSheetLimit indicates a max-sheets value below one.
var ErrInvalidSheetLimit = errors.New("invalid sheet limit")

// Config holds partitioning and naming parameters.
type Config struct {
	// MaxSheets bounds the number of sheets per workbook when Split is set.
	MaxSheets int
	// Split enables splitting across several workbooks.
	Split bool
	// BaseName is the source document name without extension.
	BaseName string
	// Pages is the selected page list.
	Pages []int
	// PageSubset reports whether Pages is a user-selected subset of the
	// document rather than every page.
	PageSubset bool
}

// Partition slices entries into consecutive output units of at most
// cfg.MaxSheets sheets each, preserving order.
func Partition(entries []*models.AccumulatedTable, cfg Config) ([]models.OutputUnit, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	size := len(entries)
	if cfg.Split {
		if cfg.MaxSheets < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSheetLimit, cfg.MaxSheets)
		}
		size = cfg.MaxSheets
	}

	count := (len(entries) + size - 1) / size
	units := make([]models.OutputUnit, 0, count)

	for start := 0; start < len(entries); start += size {
		end := min(start+size, len(entries))
		unit := models.OutputUnit{
			FileName: FileName(cfg, len(units)+1, count),
		}

		names := newNameSet()
		for j, entry := range entries[start:end] {
			unit.Sheets = append(unit.Sheets, models.Sheet{
				Name:  names.add(SheetName(entry, j+1)),
				Table: entry,
			})
		}
		units = append(units, unit)
	}

	return units, nil
}

// FileName builds the workbook file name for the part-th of total units.
func FileName(cfg Config, part, total int) string {
	var sb strings.Builder
	sb.WriteString(cfg.BaseName)
	if cfg.PageSubset && len(cfg.Pages) > 0 {
		fmt.Fprintf(&sb, "_pages_%d-%d", cfg.Pages[0], cfg.Pages[len(cfg.Pages)-1])
	}
	if total > 1 {
		fmt.Fprintf(&sb, "_part_%d", part)
	}
	sb.WriteString(".xlsx")
	return sb.String()
}

// SheetName returns the preferred sheet name for an entry at the 1-based
// position within its unit: the sanitized title for titled keys, Table_{n}
// otherwise.
func SheetName(entry *models.AccumulatedTable, position int) string {
	if entry.Key.HasTitle && entry.Key.Title != "" {
		return parser.SanitizeSheetName(entry.Key.Title)
	}
	return fmt.Sprintf("Table_%d", position)
}

// nameSet hands out sheet names unique within one workbook. Excel compares
// sheet names case-insensitively.
type nameSet map[string]struct{}

func newNameSet() nameSet {
	return make(nameSet)
}

// add returns name, or name with the smallest "_N" suffix (N >= 2) that makes
// it unique, truncating the base to stay within the sheet name limit.
func (s nameSet) add(name string) string {
	candidate := name
	for n := 2; s.has(candidate); n++ {
		suffix := fmt.Sprintf("_%d", n)
		base := parser.TruncateSheetName(name, parser.MaxSheetNameLength-utf8.RuneCountInString(suffix))
		candidate = base + suffix
	}
	s[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func (s nameSet) has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}
