package writer

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-categorizer/internal/categorize"
	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// DefaultPreviewRows is how many rows Preview prints when n <= 0.
const DefaultPreviewRows = 10

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorMuted  = lipgloss.Color("#6F6E69")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// Preview prints the first n transactions as a table, followed by the
// spend per category.
func Preview(out io.Writer, txns []models.Transaction, n int) error {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	shown := txns
	if len(shown) > n {
		shown = shown[:n]
	}

	rows := make([][]string, 0, len(shown))
	for _, txn := range shown {
		rows = append(rows, row(txn))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(Columns...).
		Rows(rows...).
		StyleFunc(func(r, c int) lipgloss.Style {
			switch {
			case r == table.HeaderRow:
				return headerStyle
			case c == 2:
				return amountStyle
			default:
				return cellStyle
			}
		})

	if _, err := fmt.Fprintf(out, "\nFirst %d rows of combined and processed data:\n", len(shown)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, t.Render()); err != nil {
		return err
	}
	if len(txns) > len(shown) {
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("... %d more row(s)", len(txns)-len(shown))))
	}

	return writeSummary(out, txns)
}

func writeSummary(out io.Writer, txns []models.Transaction) error {
	totals := categorize.Summarize(txns)
	if len(totals) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(totals))
	for _, ct := range totals {
		rows = append(rows, []string{ct.Category, fmt.Sprintf("%d", ct.Count), FormatUSD(ct.Total)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("Category", "Count", "Total").
		Rows(rows...).
		StyleFunc(func(r, c int) lipgloss.Style {
			switch {
			case r == table.HeaderRow:
				return headerStyle
			case c > 0:
				return amountStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintf(out, "\nSpend by category:\n%s\n", t.Render())
	return err
}

// FormatUSD renders an amount as dollars, e.g. -$1,250.00.
func FormatUSD(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
