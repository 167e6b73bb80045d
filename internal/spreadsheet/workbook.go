// Package spreadsheet reads invoice records out of the batch workbook,
// one header-less data row per serial number.
package spreadsheet

import (
	"fmt"

	"github.com/smallbiznis/invoicesmith/internal/record"
	"github.com/xuri/excelize/v2"
)

// ReadRecord opens the workbook at path and unpacks the 1-based row number
// into a record. The workbook is reopened per call so edits between batch
// iterations are picked up.
func ReadRecord(path string, rowNum int) (record.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return record.Record{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return record.Record{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if rowNum < 1 || rowNum > len(rows) {
		return record.Record{}, fmt.Errorf("row %d not found in %s", rowNum, sheet)
	}

	rec, err := record.FromRow(rows[rowNum-1])
	if err != nil {
		return record.Record{}, fmt.Errorf("row %d: %w", rowNum, err)
	}
	return rec, nil
}
