// Package merge groups normalized tables that share the same title and
// columns into accumulated tables.
package merge

import (
	"fmt"

	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/models"
)

// ResolveKey derives the merge identity of a table. It returns the "no
// merge" key when merging is disabled.
func ResolveKey(t models.NormalizedTable, enabled bool) models.MergeKey {
	if !enabled {
		return models.MergeKey{}
	}

	key := models.MergeKey{
		Enabled: true,
		Columns: models.EncodeColumns(t.Columns),
	}
	if t.Title != nil {
		key.HasTitle = true
		key.Title = *t.Title
	}
	return key
}

// Store is an insertion-ordered mapping from merge key to accumulated table.
// A Store is owned by a single batch run and is not safe for concurrent use.
type Store struct {
	entries []*models.AccumulatedTable
	index   map[models.MergeKey]*models.AccumulatedTable
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		index: make(map[models.MergeKey]*models.AccumulatedTable),
	}
}

// Accumulate adds t under key and reports whether it was merged into an
// existing entry.
//
// Tables under the "no merge" key always start a new entry. A new titled
// entry gets a synthetic title row (title in the first column) as its first
// row; tables merged into it later contribute their data rows only.
func (s *Store) Accumulate(key models.MergeKey, t models.NormalizedTable) bool {
	if !key.IsNone() {
		if entry, ok := s.index[key]; ok {
			entry.Rows = append(entry.Rows, copyRows(t.Rows)...)
			entry.Sources++
			return true
		}
	}

	entry := &models.AccumulatedTable{
		Label:   s.label(key),
		Key:     key,
		Title:   t.Title,
		Columns: append([]string(nil), t.Columns...),
		Sources: 1,
	}
	if !key.IsNone() && t.Title != nil {
		entry.Rows = append(entry.Rows, titleRow(*t.Title, len(t.Columns)))
	}
	entry.Rows = append(entry.Rows, copyRows(t.Rows)...)

	s.entries = append(s.entries, entry)
	if !key.IsNone() {
		s.index[key] = entry
	}
	return false
}

// Lookup returns the entry stored under a merge key.
func (s *Store) Lookup(key models.MergeKey) (*models.AccumulatedTable, bool) {
	entry, ok := s.index[key]
	return entry, ok
}

// Entries returns the accumulated tables in first-insertion order.
func (s *Store) Entries() []*models.AccumulatedTable {
	return s.entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) label(key models.MergeKey) string {
	if key.HasTitle {
		return key.Title
	}
	return fmt.Sprintf("Table_%d", len(s.entries)+1)
}

// titleRow builds the row marking a table title: title in column 0, empty
// strings elsewhere.
func titleRow(title string, width int) []string {
	row := make([]string, max(width, 1))
	row[0] = title
	return row
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
