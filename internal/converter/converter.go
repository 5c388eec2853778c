// Package converter runs statements through extraction, parsing and
// categorization and collects the results.
package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/statement-categorizer/internal/categorize"
	"github.com/insightdelivered/statement-categorizer/internal/extractor"
	"github.com/insightdelivered/statement-categorizer/internal/metrics"
	"github.com/insightdelivered/statement-categorizer/internal/models"
	"github.com/insightdelivered/statement-categorizer/internal/parser"
)

var (
	// ErrNoStatements means the folder holds no .pdf files.
	ErrNoStatements = errors.New("no PDF statements found")
	// ErrNoTransactions means no statement yielded a transaction.
	ErrNoTransactions = errors.New("no transactions were extracted from any PDF")
)

// Converter processes statements one at a time.
type Converter struct {
	extractor extractor.TextExtractor
	parser    parser.Parser
	engine    *categorize.Engine
	log       *logrus.Logger
	metrics   metrics.Recorder
}

// Option configures a Converter.
type Option func(*Converter)

// WithParser replaces the default Chase parser.
func WithParser(p parser.Parser) Option {
	return func(c *Converter) { c.parser = p }
}

// WithEngine replaces the built-in categorization rules.
func WithEngine(e *categorize.Engine) Option {
	return func(c *Converter) { c.engine = e }
}

// WithLogger sets the logger for progress and parser tracing.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Converter) { c.log = log }
}

// WithMetrics sets where pipeline counters are recorded.
func WithMetrics(m metrics.Recorder) Option {
	return func(c *Converter) { c.metrics = m }
}

// New returns a Converter reading text through ex.
func New(ex extractor.TextExtractor, opts ...Option) *Converter {
	c := &Converter{
		extractor: ex,
		parser:    parser.New(parser.Options{}),
		engine:    categorize.NewEngine(categorize.DefaultRules()),
		log:       logrus.StandardLogger(),
		metrics:   metrics.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the combined output of a folder run.
type Result struct {
	Statements   []*models.StatementInfo
	Transactions []models.Transaction
}

// ConvertFolder processes every PDF in dir and returns all transactions,
// categorized. Statements that cannot be read are logged and skipped.
func (c *Converter) ConvertFolder(dir string) (*Result, error) {
	files, err := ListStatements(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoStatements)
	}

	result := &Result{}
	for _, path := range files {
		name := filepath.Base(path)
		c.log.Infof("Processing %s...", name)

		info, err := c.ProcessFile(path, name)
		if err != nil {
			continue
		}
		result.Statements = append(result.Statements, info)
		result.Transactions = append(result.Transactions, info.Transactions...)
	}

	if len(result.Transactions) == 0 {
		return nil, ErrNoTransactions
	}

	c.log.Info("Categorizing all transactions...")
	c.Categorize(result.Transactions)

	return result, nil
}

// ProcessFile converts the statement at path under the given name and
// records the outcome. Failures are logged as warnings and returned.
func (c *Converter) ProcessFile(path, name string) (*models.StatementInfo, error) {
	info, err := c.ConvertFileAs(path, name)
	return c.track(name, info, err)
}

// ProcessPages is ProcessFile for text that was already extracted.
func (c *Converter) ProcessPages(name string, pages []string) (*models.StatementInfo, error) {
	info, err := c.ConvertPages(name, pages)
	return c.track(name, info, err)
}

func (c *Converter) track(name string, info *models.StatementInfo, err error) (*models.StatementInfo, error) {
	switch {
	case err != nil:
		c.log.WithError(err).Warnf("Could not read %s; skipping", name)
		c.metrics.StatementProcessed(metrics.StatusExtractFailed)
		return nil, err
	case len(info.Transactions) == 0:
		c.log.Infof("No transactions found in %s.", name)
		c.metrics.StatementProcessed(metrics.StatusNoTransactions)
	default:
		c.log.Infof("  Found %d transaction(s)", len(info.Transactions))
		c.metrics.StatementProcessed(metrics.StatusOK)
	}
	return info, nil
}

// ConvertFile extracts and parses one statement. The transactions carry
// the card suffix and source file but are not yet categorized.
func (c *Converter) ConvertFile(path string) (*models.StatementInfo, error) {
	return c.ConvertFileAs(path, filepath.Base(path))
}

// ConvertFileAs is ConvertFile for a file stored under a different name,
// such as an upload saved to a temp file. The card suffix comes from name.
func (c *Converter) ConvertFileAs(path, name string) (*models.StatementInfo, error) {
	pages, err := c.extractor.ExtractText(path)
	if err != nil {
		return nil, err
	}
	c.log.WithField("pages", len(pages)).Debugf("  Extracted text from %s", name)
	return c.ConvertPages(name, pages)
}

// ConvertPages parses already extracted page text as the statement name.
func (c *Converter) ConvertPages(name string, pages []string) (*models.StatementInfo, error) {
	suffix, ok := parser.CardSuffix(name)
	if !ok {
		c.log.Warnf("Could not extract last 4 digits from filename: %s", name)
	}

	info, err := c.parser.Parse(pages)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	info.Source = name
	info.CardSuffix = suffix
	for i := range info.Transactions {
		info.Transactions[i].CardSuffix = suffix
		info.Transactions[i].Source = name
	}

	c.traceLines(name, info.DebugLines)
	c.metrics.TransactionsExtracted(len(info.Transactions))

	return info, nil
}

// Categorize sets Category on every transaction.
func (c *Converter) Categorize(txns []models.Transaction) {
	c.engine.Apply(txns)
	for _, txn := range txns {
		c.metrics.TransactionCategorized(txn.Category)
	}
}

func (c *Converter) traceLines(name string, lines []models.DebugLine) {
	if !c.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	for _, dl := range lines {
		c.log.WithFields(logrus.Fields{
			"file":   name,
			"line":   dl.LineNum,
			"result": dl.Result,
		}).Debug(dl.Text)
	}
}

// ListStatements returns the .pdf files (any case) directly inside dir,
// sorted by name.
func ListStatements(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("folder %q not found: %w", dir, err)
		}
		return nil, fmt.Errorf("reading folder %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
