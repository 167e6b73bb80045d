package spreadsheet

import (
	"path/filepath"
	"testing"

	"github.com/smallbiznis/invoicesmith/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "INVOICE.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadRecordBySerialNumber(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"INV-001", "2024-01-15", "2024-01-30", "Jane Doe", "AcmeCo", "123 Main St", "555-0100", "jane@acme.test", "Consulting", "1000", "180", "1180"},
		{"INV-002", "2024-02-01", "2024-02-15", "John Roe", "BetaCo", "9 High St", "555-0200", "john@beta.test", "Design", "500", "90", "590"},
	})

	rec, err := ReadRecord(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "INV-002", rec.InvoiceNo)
	assert.Equal(t, "BetaCo", rec.StoreName)
	assert.Equal(t, record.TypeInvoice, rec.Type)
	assert.True(t, rec.InvoiceDate.Structured())
	assert.Equal(t, "2024-02-01", rec.InvoiceDate.FileStamp())
}

func TestReadRecordRowOutOfRange(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"INV-001", "2024-01-15", "2024-01-30", "Jane Doe", "AcmeCo", "123 Main St", "555-0100", "jane@acme.test", "Consulting", "1000", "180", "1180"},
	})

	_, err := ReadRecord(path, 5)
	assert.Error(t, err)

	_, err = ReadRecord(path, 0)
	assert.Error(t, err)
}

func TestReadRecordNarrowRow(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"INV-001", "2024-01-15", "2024-01-30"},
	})

	_, err := ReadRecord(path, 1)
	assert.Error(t, err)
}

func TestReadRecordMissingWorkbook(t *testing.T) {
	_, err := ReadRecord(filepath.Join(t.TempDir(), "absent.xlsx"), 1)
	assert.Error(t, err)
}
