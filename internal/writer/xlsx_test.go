package writer

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{}
	require.NoError(t, w.Write(&buf, sampleTransactions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"07/14", "AMAZON MKTPLACE 1PL", "23.45", "1335", "Online Shopping - Amazon"}, rows[1])
	assert.Equal(t, "-1250.00", rows[2][2])

	raw, err := f.GetCellValue(DefaultSheetName, "C2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "23.45", raw, "amounts are stored as numbers")
}

func TestXLSXWriter_ColumnWidths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&XLSXWriter{}).Write(&buf, sampleTransactions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	// longest description + 2
	width, err := f.GetColWidth(DefaultSheetName, "B")
	require.NoError(t, err)
	assert.Equal(t, float64(len("PASTELARIA BELEM, LISBOA 12.00 EURO")+2), width)

	// header is longer than any suffix
	width, err = f.GetColWidth(DefaultSheetName, "D")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Credit Card Last 4 Digits")+2), width)
}

func TestXLSXWriter_SheetName(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{SheetName: "A sheet name that is far too long for Excel"}
	require.NoError(t, w.Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Len(t, []rune(sheets[0]), 31)

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestXLSXWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined_chase_spending.xlsx")
	require.NoError(t, (&XLSXWriter{}).WriteToFile(path, sampleTransactions()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(DefaultSheetName, "E3")
	require.NoError(t, err)
	assert.Equal(t, "Payment/Credit", v)
}

func TestXLSXWriter_WriteToFile_BadPath(t *testing.T) {
	err := (&XLSXWriter{}).WriteToFile(filepath.Join(t.TempDir(), "missing", "out.xlsx"), nil)
	assert.Error(t, err)
}
