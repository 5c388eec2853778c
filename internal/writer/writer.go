package writer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// Column headers, in output order.
var Columns = []string{"Date", "Description", "Amount", "Credit Card Last 4 Digits", "Category"}

// Writer exports categorized transactions.
type Writer interface {
	Write(out io.Writer, txns []models.Transaction) error
	WriteToFile(path string, txns []models.Transaction) error
}

// Output formats accepted by New.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// New returns the writer for format. sheet names the XLSX worksheet and is
// ignored for CSV.
func New(format, sheet string) (Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatXLSX, "excel":
		return &XLSXWriter{SheetName: sheet}, nil
	case FormatCSV:
		return &CSVWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q. Supported: xlsx, csv", format)
	}
}

// Extension returns the file extension for format, or "" if the format is
// not supported.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "", FormatXLSX, "excel":
		return "." + FormatXLSX
	case FormatCSV:
		return "." + FormatCSV
	}
	return ""
}

func row(txn models.Transaction) []string {
	return []string{
		txn.Date,
		txn.Description,
		formatAmount(txn),
		txn.CardSuffix,
		txn.Category,
	}
}

func formatAmount(txn models.Transaction) string {
	return txn.Amount.StringFixed(2)
}

func createFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
