package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// ChaseParser handles Chase credit card statement PDFs.
//
// The activity table starts after a header line containing "Merchant Name"
// and ends at the fee/interest totals or the account summary:
//
//	Date of Transaction Merchant Name or Transaction Description $ Amount
//	PAYMENTS AND OTHER CREDITS
//	06/20 Payment Thank You-Mobile -500.00
//	PURCHASE
//	07/14 AMAZON MKTPLACE 1PL 23.45
//	07/15 HOTEL LISBOA 294.13
//	281.51 X 1.044794145 (EXCHG RATE)
//	FEES CHARGED
type ChaseParser struct {
	Normalize bool
}

func (p *ChaseParser) BankName() string {
	return "Chase"
}

const chaseSectionStart = "Merchant Name"

// Any of these ends the activity table for the rest of the statement.
var chaseSectionEnd = []string{
	"FEES CHARGED",
	"TOTAL FEES FOR THIS PERIOD",
	"TOTAL INTEREST FOR THIS PERIOD",
	"Totals Year-to-Date",
	"Total Balance",
	"Previous Balance",
	"Account Summary",
}

var chaseSectionHeaders = map[string]bool{
	"PURCHASE":                   true,
	"PAYMENTS AND OTHER CREDITS": true,
}

var (
	// MM/DD  DESCRIPTION  AMOUNT, amount anchored to end of line
	chaseTxnPattern = regexp.MustCompile(
		`(\d{2}/\d{2})\s+(.+?)\s+(-?\d{1,3}(?:,\d{3})*\.\d{2})\s*$`,
	)
	// 281.51 X 1.044794145 (EXCHG RATE)
	chaseExchangeRatePattern = regexp.MustCompile(
		`^\s*\d{1,3}(?:,\d{3})*\.\d{2}\s+X\s+\d+\.\d+\s+\(EXCHG RATE\)`,
	)
	// 281.51 EURO
	chaseEuroPattern = regexp.MustCompile(`^\d{1,3}(?:,\d{3})*\.\d{2}\s+EURO\s*$`)
)

func (p *ChaseParser) Parse(pages []string) (*models.StatementInfo, error) {
	text := strings.Join(pages, "\n")
	if p.Normalize {
		text = normalizeText(text)
	}

	info := &models.StatementInfo{
		Pages:           len(pages),
		StatementPeriod: extractPeriod(text),
	}
	info.Transactions, info.DebugLines = parseLines(strings.Split(text, "\n"))

	return info, nil
}

func parseLines(lines []string) ([]models.Transaction, []models.DebugLine) {
	var transactions []models.Transaction
	var debug []models.DebugLine
	inTransactionSection := false

	record := func(i int, line, result string) {
		debug = append(debug, models.DebugLine{LineNum: i + 1, Text: line, Result: result})
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, chaseSectionStart) {
			inTransactionSection = true
			record(i, line, models.LineStart)
			continue
		}

		if !inTransactionSection {
			continue
		}

		if isChaseSectionEnd(line) {
			record(i, line, models.LineEnd)
			break
		}

		if m := chaseTxnPattern.FindStringSubmatch(line); m != nil {
			desc := strings.TrimSpace(m[2])
			amount, err := parseAmount(m[3])
			if err != nil || desc == "" {
				record(i, line, models.LineSkipped)
				continue
			}
			transactions = append(transactions, models.Transaction{
				Date:        m[1],
				Description: desc,
				Amount:      amount,
			})
			record(i, line, models.LineParsed)
			continue
		}

		if len(transactions) > 0 && isChaseContinuation(line) {
			last := &transactions[len(transactions)-1]
			last.Description += " " + line
			record(i, line, models.LineContinuation)
			continue
		}

		if chaseSectionHeaders[line] {
			record(i, line, models.LineHeader)
			continue
		}

		record(i, line, models.LineSkipped)
	}

	return transactions, debug
}

func isChaseSectionEnd(line string) bool {
	for _, marker := range chaseSectionEnd {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// isChaseContinuation reports whether line is a foreign currency annotation
// that belongs to the transaction above it.
func isChaseContinuation(line string) bool {
	return chaseExchangeRatePattern.MatchString(line) || chaseEuroPattern.MatchString(line)
}
