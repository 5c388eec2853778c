package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Date: "07/14", Description: "AMAZON MKTPLACE 1PL", Amount: decimal.RequireFromString("23.45"), CardSuffix: "1335", Category: "Online Shopping - Amazon"},
		{Date: "06/20", Description: "Payment Thank You-Mobile", Amount: decimal.RequireFromString("-1250"), CardSuffix: "1335", Category: "Payment/Credit"},
		{Date: "07/16", Description: "PASTELARIA BELEM, LISBOA 12.00 EURO", Amount: decimal.RequireFromString("12.53"), CardSuffix: models.NoCardSuffix, Category: "Miscellaneous"},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleTransactions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.HasPrefix(output, "Date,Description,Amount,Credit Card Last 4 Digits,Category\n") {
		t.Errorf("expected column headers first, got %q", output)
	}
	if !strings.Contains(output, "07/14,AMAZON MKTPLACE 1PL,23.45,1335,Online Shopping - Amazon") {
		t.Error("expected first transaction row")
	}
	if !strings.Contains(output, "-1250.00") {
		t.Error("expected amount with two decimals")
	}
	if !strings.Contains(output, `"PASTELARIA BELEM, LISBOA 12.00 EURO"`) {
		t.Error("expected description with comma to be quoted")
	}
	if !strings.Contains(output, ",N/A,") {
		t.Error("expected absent card suffix marker")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 1 header + 3 transactions
	if len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(lines))
	}
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{OmitHeader: true}
	if err := w.Write(&buf, sampleTransactions()[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "Description") {
		t.Error("should not have column headers when OmitHeader is set")
	}
	if strings.TrimSpace(output) != "07/14,AMAZON MKTPLACE 1PL,23.45,1335,Online Shopping - Amazon" {
		t.Errorf("unexpected output %q", output)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"25.99", "25.99"},
		{"1234.56", "1234.56"},
		{"0", "0.00"},
		{"2500", "2500.00"},
		{"-500.5", "-500.50"},
	}

	for _, tt := range tests {
		got := formatAmount(models.Transaction{Amount: decimal.RequireFromString(tt.input)})
		if got != tt.expected {
			t.Errorf("formatAmount(%s): got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"", "*writer.XLSXWriter", false},
		{"xlsx", "*writer.XLSXWriter", false},
		{"XLSX", "*writer.XLSXWriter", false},
		{"csv", "*writer.CSVWriter", false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w, err := New(tt.format, "")
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := typeName(w); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"":      ".xlsx",
		"xlsx":  ".xlsx",
		"excel": ".xlsx",
		"CSV":   ".csv",
		"pdf":   "",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q): got %q, want %q", format, got, want)
		}
	}
}

func typeName(w Writer) string {
	switch w.(type) {
	case *XLSXWriter:
		return "*writer.XLSXWriter"
	case *CSVWriter:
		return "*writer.CSVWriter"
	}
	return ""
}
