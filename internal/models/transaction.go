package models

import "github.com/shopspring/decimal"

// NoCardSuffix marks a transaction whose statement filename did not carry
// the last four digits of the card.
const NoCardSuffix = "N/A"

// Transaction represents a single credit card statement transaction.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CardSuffix  string          `json:"cardSuffix"`
	Category    string          `json:"category,omitempty"`
	Source      string          `json:"source,omitempty"` // statement file the row came from
}

// Line results recorded in DebugLine.Result.
const (
	LineStart        = "start"
	LineEnd          = "end"
	LineParsed       = "parsed"
	LineContinuation = "continuation"
	LineHeader       = "header"
	LineSkipped      = "skipped"
)

// DebugLine captures what the parser did with each input line.
type DebugLine struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"`
}

// StatementInfo holds what was recovered from one statement.
type StatementInfo struct {
	Source          string
	CardSuffix      string
	StatementPeriod string
	Pages           int
	Transactions    []Transaction
	DebugLines      []DebugLine
}
