package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// parseAmount converts a string like "1,234.56" or "-25.99" to a two-place
// decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")

	if s == "" || s == "-" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}

// normalizeText compresses repeated characters (AAA -> A) produced by PDFs
// whose text layer doubles or triples glyphs, then drops non-breaking spaces
// and form feeds. Line breaks are never collapsed.
func normalizeText(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	var prev rune
	for i, r := range text {
		if i > 0 && r == prev && r != '\n' {
			continue
		}
		b.WriteRune(r)
		prev = r
	}

	out := strings.ReplaceAll(b.String(), "\u00a0", " ")
	out = strings.ReplaceAll(out, "\f", "")
	return strings.TrimSpace(out)
}

// "Opening/Closing Date 06/15/25 - 07/14/25"
var periodPattern = regexp.MustCompile(
	`(?i)opening/closing date\s+(\d{2}/\d{2}/\d{2,4})\s*-\s*(\d{2}/\d{2}/\d{2,4})`,
)

func extractPeriod(text string) string {
	m := periodPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + " to " + m[2]
}

// "20250504-statements-1335-.pdf" or "20250504-statements-1335.pdf"
var cardSuffixPattern = regexp.MustCompile(`(?i)-(\d{4})(?:-|\.pdf$)`)

// CardSuffix returns the last four card digits encoded in a statement
// filename, or models.NoCardSuffix when the name does not carry them.
func CardSuffix(filename string) (string, bool) {
	m := cardSuffixPattern.FindStringSubmatch(filepath.Base(filename))
	if m == nil {
		return models.NoCardSuffix, false
	}
	return m[1], true
}
