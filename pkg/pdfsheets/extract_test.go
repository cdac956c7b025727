package pdfsheets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/models"
	"github.com/xuri/excelize/v2"
)

// fakeSource serves fixed tables per page and fails on the pages in errs.
type fakeSource struct {
	pages map[int][]models.RawTable
	total int
	errs  map[int]error
	calls []int
}

func (s *fakeSource) PageCount() int { return s.total }

func (s *fakeSource) ExtractTables(page int) ([]models.RawTable, error) {
	s.calls = append(s.calls, page)
	if err := s.errs[page]; err != nil {
		return nil, err
	}
	return s.pages[page], nil
}

func premiumsPage(rows ...[]*string) models.RawTable {
	table := models.RawTable{
		models.Row("Premiums"),
		models.Row("Coverage", "Limit", "Deductible", "Premium"),
	}
	return append(table, rows...)
}

func scenarioSource() *fakeSource {
	return &fakeSource{
		total: 3,
		pages: map[int][]models.RawTable{
			1: {premiumsPage(models.Row("Liability", "100k", "0", "250"))},
			2: {premiumsPage(models.Row("Collision", "50k", "500", "400"), models.Row("Comprehensive", "50k", "250", "120"))},
			3: {{
				models.Row("Driver", "Age"),
				models.Row("Pat", "41"),
			}},
		},
	}
}

func TestRunMergesAcrossPages(t *testing.T) {
	src := scenarioSource()

	result, err := Run(src, []int{1, 2, 3}, "policy", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, src.calls)
	assert.Equal(t, 3, result.PagesWithTables)
	require.Len(t, result.Tables, 2)

	premiums := result.Tables[0]
	assert.Equal(t, "Premiums", premiums.Label)
	assert.Equal(t, [][]string{
		{"Premiums", "", "", ""},
		{"Liability", "100k", "0", "250"},
		{"Collision", "50k", "500", "400"},
		{"Comprehensive", "50k", "250", "120"},
	}, premiums.Rows)

	drivers := result.Tables[1]
	assert.Equal(t, "Table_2", drivers.Label)
	assert.Equal(t, [][]string{{"Pat", "41"}}, drivers.Rows)

	require.Len(t, result.Units, 1)
	unit := result.Units[0]
	assert.Equal(t, "policy.xlsx", unit.FileName)
	require.Len(t, unit.Sheets, 2)
	assert.Equal(t, "Premiums", unit.Sheets[0].Name)
	assert.Equal(t, "Table_2", unit.Sheets[1].Name)
}

func TestRunWithoutMerging(t *testing.T) {
	opts := DefaultOptions()
	opts.MergeTables = Bool(false)

	result, err := Run(scenarioSource(), []int{1, 2, 3}, "policy", opts)
	require.NoError(t, err)

	require.Len(t, result.Tables, 3)
	var names []string
	for _, sheet := range result.Units[0].Sheets {
		names = append(names, sheet.Name)
	}
	assert.Equal(t, []string{"Table_1", "Table_2", "Table_3"}, names)
	assert.Equal(t, [][]string{{"Liability", "100k", "0", "250"}}, result.Tables[0].Rows)
}

func TestRunSplitsAndNamesFiles(t *testing.T) {
	opts := DefaultOptions()
	opts.MergeTables = Bool(false)
	opts.MaxSheets = 1

	src := scenarioSource()
	src.total = 10

	result, err := Run(src, []int{1, 2, 3}, "policy", opts)
	require.NoError(t, err)

	var files []string
	for _, unit := range result.Units {
		files = append(files, unit.FileName)
		assert.Len(t, unit.Sheets, 1)
		assert.Equal(t, "Table_1", unit.Sheets[0].Name)
	}
	assert.Equal(t, []string{
		"policy_pages_1-3_part_1.xlsx",
		"policy_pages_1-3_part_2.xlsx",
		"policy_pages_1-3_part_3.xlsx",
	}, files)
}

func TestRunFailsFast(t *testing.T) {
	boom := errors.New("boom")
	src := scenarioSource()
	src.errs = map[int]error{2: boom}

	result, err := Run(src, []int{1, 2, 3}, "policy", DefaultOptions())
	assert.Nil(t, result)
	require.ErrorIs(t, err, boom)

	var pageErr *PageError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 2, pageErr.Page)
	assert.Equal(t, []int{1, 2}, src.calls)
}

func TestRunSkipsFailedPages(t *testing.T) {
	logger, hook := test.NewNullLogger()
	src := scenarioSource()
	src.errs = map[int]error{1: errors.New("bad page")}

	opts := DefaultOptions()
	opts.SkipFailedPages = true
	opts.Logger = logger

	result, err := Run(src, []int{1, 2, 3}, "policy", opts)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, result.SkippedPages)
	assert.Equal(t, 2, result.PagesWithTables)
	require.Len(t, result.Tables, 2)
	assert.Len(t, result.Tables[0].Rows, 3)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["page"] == 1 {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning for the skipped page")
}

func TestRunNoTables(t *testing.T) {
	src := &fakeSource{
		total: 2,
		pages: map[int][]models.RawTable{
			1: nil,
			2: {{{nil, nil}, {models.Text(" ")}}},
		},
	}

	_, err := Run(src, []int{1, 2}, "empty", DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTablesFound)

	_, err = Run(src, []int{}, "empty", DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTablesFound)
}

func TestRunReportsProgress(t *testing.T) {
	var calls [][2]int
	opts := DefaultOptions()
	opts.Progress = func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}

	_, err := Run(scenarioSource(), []int{3, 1}, "policy", opts)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
}

func TestRunInvalidSheetLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSheets = -1

	_, err := Run(scenarioSource(), []int{1}, "policy", opts)
	assert.ErrorIs(t, err, ErrInvalidSheetLimit)
}

func TestFiles(t *testing.T) {
	result, err := Run(scenarioSource(), []int{1, 2, 3}, "policy", DefaultOptions())
	require.NoError(t, err)

	entries, err := Files(result)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "policy.xlsx", entries[0].Name)

	f, err := excelize.OpenReader(bytes.NewReader(entries[0].Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Premiums", "Table_2"}, f.GetSheetList())
	rows, err := f.GetRows("Premiums")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Coverage", "Limit", "Deductible", "Premium"}, rows[0])
	assert.Equal(t, []string{"Premiums"}, rows[1])
}

func TestExtractUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-garbage"), 0644))

	_, err := Extract(path, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}

func TestExtractPDF(t *testing.T) {
	opts := DefaultOptions()
	opts.Pages = "2"

	result, err := Extract(filepath.Join("pdfgrid", "testdata", "premiums.pdf"), opts)
	require.NoError(t, err)
	require.Len(t, result.Tables, 1)

	table := result.Tables[0]
	assert.Equal(t, "Premiums", table.Label)
	assert.Equal(t, []string{"Coverage", "Limit", "Premium"}, table.Columns)
	assert.Equal(t, [][]string{{"Premiums", "", ""}, {"Collision", "50k", "400"}}, table.Rows)

	require.Len(t, result.Units, 1)
	assert.Equal(t, "premiums_pages_2-2.xlsx", result.Units[0].FileName)
}

func TestParseMaxSheets(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"25", 25, false},
		{" 3 ", 3, false},
		{"abc", DefaultMaxSheets, true},
		{"", DefaultMaxSheets, true},
		{"0", DefaultMaxSheets, true},
		{"-4", DefaultMaxSheets, true},
		{"2.5", DefaultMaxSheets, true},
	}

	for _, tt := range tests {
		n, err := ParseMaxSheets(tt.input)
		if n != tt.expected {
			t.Errorf("ParseMaxSheets(%q) = %d, expected %d", tt.input, n, tt.expected)
		}
		if tt.wantErr != errors.Is(err, ErrInvalidSheetLimit) {
			t.Errorf("ParseMaxSheets(%q) error = %v", tt.input, err)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"/tmp/report.pdf":  "report",
		"report.final.PDF": "report.final",
		"dir/no_extension": "no_extension",
	}
	for input, expected := range tests {
		if got := BaseName(input); got != expected {
			t.Errorf("BaseName(%q) = %q, expected %q", input, got, expected)
		}
	}
}
