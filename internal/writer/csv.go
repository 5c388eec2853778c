package writer

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	OmitHeader bool
}

type csvRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	CardSuffix  string `csv:"Credit Card Last 4 Digits"`
	Category    string `csv:"Category"`
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	return createFile(path, func(out io.Writer) error {
		return w.Write(out, txns)
	})
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	rows := make([]*csvRow, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, &csvRow{
			Date:        txn.Date,
			Description: txn.Description,
			Amount:      formatAmount(txn),
			CardSuffix:  txn.CardSuffix,
			Category:    txn.Category,
		})
	}

	marshal := gocsv.Marshal
	if w.OmitHeader {
		marshal = gocsv.MarshalWithoutHeaders
	}
	if err := marshal(&rows, out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
