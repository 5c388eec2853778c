package categorize

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

// Engine evaluates an ordered rule list. All keywords are compiled into one
// Aho-Corasick automaton so a description is scanned once; the matching rule
// with the lowest index wins. An Engine is safe for concurrent use.
type Engine struct {
	rules    []Rule
	matcher  *ahocorasick.Matcher
	patterns []string
	owners   [][]int // rule indexes per pattern, ascending
	credit   int     // first Credit rule, -1 if none
}

// NewEngine compiles rules. Keywords are matched case-insensitively.
func NewEngine(rules []Rule) *Engine {
	e := &Engine{rules: rules, credit: -1}

	index := make(map[string]int)
	for ri, r := range rules {
		if r.Credit && e.credit < 0 {
			e.credit = ri
		}
		for _, kw := range r.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			pi, ok := index[kw]
			if !ok {
				pi = len(e.patterns)
				index[kw] = pi
				e.patterns = append(e.patterns, kw)
				e.owners = append(e.owners, nil)
			}
			e.owners[pi] = append(e.owners[pi], ri)
		}
	}

	if len(e.patterns) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(e.patterns)
	}
	return e
}

// Categorize returns the label of the first rule matching description and
// amount, or Miscellaneous.
func (e *Engine) Categorize(description string, amount decimal.Decimal) string {
	best := len(e.rules)

	if e.credit >= 0 && amount.IsNegative() {
		best = e.credit
	}

	if e.matcher != nil {
		// Match keeps dedup counters on the matcher; the server categorizes
		// from many goroutines.
		for _, pi := range e.matcher.MatchThreadSafe([]byte(strings.ToLower(description))) {
			if ri := e.owners[pi][0]; ri < best {
				best = ri
			}
		}
	}

	if best == len(e.rules) {
		return Miscellaneous
	}
	return e.rules[best].Label
}

// Apply sets Category on every transaction in place.
func (e *Engine) Apply(txns []models.Transaction) {
	for i := range txns {
		txns[i].Category = e.Categorize(txns[i].Description, txns[i].Amount)
	}
}

var defaultEngine = NewEngine(DefaultRules())

// Categorize classifies a transaction with the built-in rules.
func Categorize(description string, amount decimal.Decimal) string {
	return defaultEngine.Categorize(description, amount)
}

// Apply categorizes txns in place with the built-in rules.
func Apply(txns []models.Transaction) {
	defaultEngine.Apply(txns)
}
