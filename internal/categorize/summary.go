package categorize

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// CategoryTotal is the sum and count of transactions sharing a category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// Summarize totals categorized transactions per category, largest spend
// first. Uncategorized rows are grouped under Miscellaneous.
func Summarize(txns []models.Transaction) []CategoryTotal {
	byCategory := make(map[string]*CategoryTotal)
	for _, txn := range txns {
		cat := txn.Category
		if cat == "" {
			cat = Miscellaneous
		}
		ct, ok := byCategory[cat]
		if !ok {
			ct = &CategoryTotal{Category: cat}
			byCategory[cat] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(txn.Amount)
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		totals = append(totals, *ct)
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}
