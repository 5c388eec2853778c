package extractor

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

// TextExtractor turns a statement file into the text of each page.
type TextExtractor interface {
	ExtractText(filePath string) ([]string, error)
}

// ErrNoText is returned when no method produced readable text.
var ErrNoText = errors.New("no readable text could be extracted from PDF")

// PDFExtractor reads text with the ledongthuc/pdf library and falls back to
// the pdftotext command (poppler-utils) when the library cannot decode the
// fonts.
type PDFExtractor struct {
	Log *logrus.Logger

	// DisablePdftotext skips the external command fallback.
	DisablePdftotext bool
}

// NewPDFExtractor returns an extractor that logs to log.
func NewPDFExtractor(log *logrus.Logger) *PDFExtractor {
	return &PDFExtractor{Log: log}
}

// ExtractText returns the text of every page of the PDF at filePath.
func (e *PDFExtractor) ExtractText(filePath string) ([]string, error) {
	log := e.logger().WithField("file", filePath)

	pages, libErr := extractWithLibrary(filePath, log)
	if libErr == nil && isReadableText(pages) {
		log.WithField("chars", totalTextLen(pages)).Debug("extracted text with pdf library")
		return pages, nil
	}
	if libErr != nil {
		log.WithError(libErr).Debug("pdf library extraction failed")
	}

	if !e.DisablePdftotext {
		popplerPages, popplerErr := extractWithPdftotext(filePath)
		if popplerErr == nil && isReadableText(popplerPages) {
			log.WithField("chars", totalTextLen(popplerPages)).Debug("extracted text with pdftotext")
			return popplerPages, nil
		}
		if popplerErr != nil {
			log.WithError(popplerErr).Debug("pdftotext extraction failed")
		}
	}

	if libErr != nil {
		return nil, fmt.Errorf("extracting %s: %w", filePath, libErr)
	}
	return nil, fmt.Errorf("extracting %s: %w", filePath, ErrNoText)
}

func (e *PDFExtractor) logger() *logrus.Logger {
	if e.Log != nil {
		return e.Log
	}
	return logrus.StandardLogger()
}

// extractWithLibrary reads rows of text page by page. If the row layout comes
// back unreadable it retries with whole-document plain text.
func extractWithLibrary(filePath string, log *logrus.Entry) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	log.WithField("pages", numPages).Debug("opened PDF")

	pages = extractByRow(r, numPages, log)
	if isReadableText(pages) {
		return pages, nil
	}

	plainText := extractByReaderPlainText(r)
	if isReadableText([]string{plainText}) {
		return []string{plainText}, nil
	}

	return pages, nil
}

// extractByRow joins the words of each row with a single space, which keeps
// "MM/DD description amount" on one line for the statement parser.
func extractByRow(r *pdf.Reader, numPages int, log *logrus.Entry) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			log.WithError(err).WithField("page", i).Warn("page could not be read")
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			log.WithField("page", i).Warn("page yielded no text; layout may be complex or scanned")
			continue
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// extractWithPdftotext runs pdftotext once per page to preserve page
// boundaries.
func extractWithPdftotext(filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	numPages := pageCount(filePath)
	if numPages == 0 {
		numPages = 1
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		n := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", n, "-l", n, filePath, "-").Output()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftotext produced no output")
	}
	return pages, nil
}

// pageCount asks pdfinfo for the number of pages; 0 when unknown.
func pageCount(filePath string) int {
	out, err := exec.Command("pdfinfo", filePath).Output()
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Pages:") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
			if err == nil {
				return n
			}
		}
	}
	return 0
}

// textQuality returns the share of characters that are ASCII letters,
// digits, whitespace or punctuation, or a currency sign. Non-ASCII letters
// count as garbage: identity-encoded fonts decode to accented runes.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isReadableRune(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isReadableRune(r rune) bool {
	switch r {
	case '€', '£', '$':
		return true
	}
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r))
}

// Words that appear on every card statement; text with none of them is
// almost certainly undecoded font garbage.
var commonWords = []string{
	"account", "balance", "payment", "statement", "transaction",
	"credit", "date", "total", "amount", "merchant", "purchase",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText requires more than 50 characters, over 60% readable ASCII
// and at least one common statement word.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
