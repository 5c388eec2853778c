// Package metrics records statement processing counters for prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives pipeline events from the converter.
type Recorder interface {
	StatementProcessed(status string)
	TransactionsExtracted(n int)
	TransactionCategorized(category string)
}

// Statement statuses.
const (
	StatusOK             = "ok"
	StatusExtractFailed  = "extract_failed"
	StatusNoTransactions = "no_transactions"
)

// Prometheus implements Recorder with counters on a registry.
type Prometheus struct {
	statements   *prometheus.CounterVec
	transactions prometheus.Counter
	categories   *prometheus.CounterVec
}

// NewPrometheus registers the counters on reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		statements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statements_processed_total",
				Help: "Total number of statement files processed, by outcome",
			},
			[]string{"status"},
		),
		transactions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "statement_transactions_extracted_total",
				Help: "Total number of transactions extracted from statements",
			},
		),
		categories: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_transactions_categorized_total",
				Help: "Total number of transactions categorized, by category",
			},
			[]string{"category"},
		),
	}
}

func (p *Prometheus) StatementProcessed(status string) {
	p.statements.WithLabelValues(status).Inc()
}

func (p *Prometheus) TransactionsExtracted(n int) {
	p.transactions.Add(float64(n))
}

func (p *Prometheus) TransactionCategorized(category string) {
	p.categories.WithLabelValues(category).Inc()
}

// Nop discards every event.
type Nop struct{}

func (Nop) StatementProcessed(string)     {}
func (Nop) TransactionsExtracted(int)     {}
func (Nop) TransactionCategorized(string) {}
