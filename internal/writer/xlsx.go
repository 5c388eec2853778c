package writer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// DefaultSheetName is used when XLSXWriter.SheetName is empty.
const DefaultSheetName = "Chase Statement Analysis"

// XLSXWriter writes transactions to a single-sheet workbook. Amounts are
// stored as numbers and every column is sized to its longest value.
type XLSXWriter struct {
	SheetName string
}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, txns []models.Transaction) error {
	return createFile(path, func(out io.Writer) error {
		return w.Write(out, txns)
	})
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, txns []models.Transaction) error {
	f, err := w.build(txns)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) sheet() string {
	if w.SheetName == "" {
		return DefaultSheetName
	}
	// Excel caps sheet names at 31 characters.
	if utf8.RuneCountInString(w.SheetName) > 31 {
		return string([]rune(w.SheetName)[:31])
	}
	return w.SheetName
}

func (w *XLSXWriter) build(txns []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := w.sheet()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	widths := make([]int, len(Columns))
	for i, h := range Columns {
		widths[i] = utf8.RuneCountInString(h)
	}

	if err := f.SetSheetRow(sheet, "A1", &Columns); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, txn := range txns {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			txn.Date,
			txn.Description,
			txn.Amount.InexactFloat64(),
			txn.CardSuffix,
			txn.Category,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		for c, s := range row(txn) {
			if n := utf8.RuneCountInString(s); n > widths[c] {
				widths[c] = n
			}
		}
	}

	if err := w.style(f, sheet, len(txns)); err != nil {
		f.Close()
		return nil, err
	}

	for c, width := range widths {
		col, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(sheet, col, col, float64(width+2)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	return f, nil
}

// style bolds the header row and shows amounts with two decimals.
func (w *XLSXWriter) style(f *excelize.File, sheet string, rows int) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Columns))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if rows == 0 {
		return nil
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(3, rows+1)
	if err := f.SetCellStyle(sheet, "C2", last, amount); err != nil {
		return fmt.Errorf("failed to style amounts: %w", err)
	}
	return nil
}
