// Package output renders output units to xlsx workbooks and bundles them
// into a zip archive.
package output

import (
	"fmt"

	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/models"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet every new excelize workbook starts with.
const defaultSheet = "Sheet1"

// WriteWorkbook renders one output unit to xlsx bytes.
func WriteWorkbook(unit models.OutputUnit) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range unit.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}

		if err := WriteSheet(f, sheet.Name, sheet.Table, true); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", unit.FileName, err)
	}
	return buf.Bytes(), nil
}

// WriteSheet writes a table to an existing sheet, starting at A1. When
// includeHeader is set the column names occupy the first row. Cells are
// written as text; ragged rows are written as they are.
func WriteSheet(f *excelize.File, sheetName string, table *models.AccumulatedTable, includeHeader bool) error {
	rowNum := 1
	if includeHeader {
		if err := setRow(f, sheetName, rowNum, table.Columns); err != nil {
			return err
		}
		rowNum++
	}

	for _, row := range table.Rows {
		if err := setRow(f, sheetName, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}
	return nil
}

func setRow(f *excelize.File, sheetName string, rowNum int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("sheet %q row %d: %w", sheetName, rowNum, err)
	}
	return nil
}
