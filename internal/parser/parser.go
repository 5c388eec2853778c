package parser

import (
	"strings"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// Parser defines the interface for statement parsers.
type Parser interface {
	// Parse takes raw text from PDF pages and returns structured statement data.
	Parse(pages []string) (*models.StatementInfo, error)
	// BankName returns the human-readable bank name.
	BankName() string
}

// Options tune how statement text is prepared before parsing.
type Options struct {
	// Normalize collapses runs of a repeated character before parsing.
	// Some PDF producers emit every glyph two or three times; the collapse is
	// lossy for amounts such as 100.00, so it stays off unless asked for.
	Normalize bool
}

// New returns the Chase statement parser.
func New(opts Options) Parser {
	return &ChaseParser{Normalize: opts.Normalize}
}

// ParseText runs the Chase parser over a single block of statement text and
// returns only the transactions.
func ParseText(text string) []models.Transaction {
	txns, _ := parseLines(strings.Split(text, "\n"))
	return txns
}
