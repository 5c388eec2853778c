package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/statement-categorizer/internal/categorize"
	"github.com/insightdelivered/statement-categorizer/internal/converter"
	"github.com/insightdelivered/statement-categorizer/internal/models"
	"github.com/insightdelivered/statement-categorizer/internal/writer"
)

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool                       `json:"success"`
	Error        string                     `json:"error,omitempty"`
	Statements   []StatementResult          `json:"statements,omitempty"`
	Transactions []models.Transaction       `json:"transactions"`
	Summary      []categorize.CategoryTotal `json:"summary,omitempty"`
	Count        int                        `json:"count"`
	Version      string                     `json:"version,omitempty"`
}

// StatementResult describes one uploaded file.
type StatementResult struct {
	File       string             `json:"file"`
	CardSuffix string             `json:"cardSuffix"`
	Period     string             `json:"period,omitempty"`
	Count      int                `json:"count"`
	Error      string             `json:"error,omitempty"`
	DebugLines []models.DebugLine `json:"debugLines,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Converter *converter.Converter
	Log       *logrus.Logger
	Version   string
	// SheetName names the worksheet of XLSX downloads.
	SheetName string
}

// RegisterRoutes sets up the API routes on app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", h.handleHealth)
	api.Post("/convert", h.handleConvert)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.Version,
		"engine":  "fiber",
	})
}

func (h *Handler) handleConvert(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
	}

	files := form.File["file"]
	if len(files) == 0 {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	for _, fh := range files {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Only PDF files are supported (got %q).", fh.Filename))
		}
	}

	format := strings.ToLower(c.FormValue("format", "json"))
	if format != "json" && format != writer.FormatXLSX {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown format %q. Use json or xlsx.", format))
	}
	debug := c.FormValue("debug") == "true"

	// Text extracted client-side (pdf.js) skips server extraction. It only
	// applies to single-file uploads.
	var pages []string
	if text := c.FormValue("extractedText"); text != "" && len(files) == 1 {
		for _, page := range strings.Split(text, "\n---PAGE_BREAK---\n") {
			if page = strings.TrimSpace(page); page != "" {
				pages = append(pages, page)
			}
		}
	}

	var (
		results []StatementResult
		txns    = []models.Transaction{}
	)
	for _, fh := range files {
		var (
			info *models.StatementInfo
			err  error
		)
		if len(pages) > 0 {
			info, err = h.Converter.ProcessPages(filepath.Base(fh.Filename), pages)
		} else {
			info, err = h.convertUpload(c, fh)
		}

		res := StatementResult{File: fh.Filename}
		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}
		res.CardSuffix = info.CardSuffix
		res.Period = info.StatementPeriod
		res.Count = len(info.Transactions)
		if debug {
			res.DebugLines = info.DebugLines
		}
		results = append(results, res)
		txns = append(txns, info.Transactions...)
	}

	if len(txns) == 0 {
		// One upload that could not be read is the client's problem.
		if len(results) == 1 && results[0].Error != "" {
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %s", results[0].Error))
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ConvertResponse{
			Success:      false,
			Error:        converter.ErrNoTransactions.Error(),
			Statements:   results,
			Transactions: txns,
			Version:      h.Version,
		})
	}

	h.Converter.Categorize(txns)

	if format == writer.FormatXLSX {
		var buf bytes.Buffer
		w := &writer.XLSXWriter{SheetName: h.SheetName}
		if err := w.Write(&buf, txns); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("XLSX generation failed: %v", err))
		}
		c.Attachment("combined_chase_spending.xlsx")
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}

	return c.JSON(ConvertResponse{
		Success:      true,
		Statements:   results,
		Transactions: txns,
		Summary:      categorize.Summarize(txns),
		Count:        len(txns),
		Version:      h.Version,
	})
}

// convertUpload saves fh to a temp file and converts it under its original
// name so the card suffix survives.
func (h *Handler) convertUpload(c *fiber.Ctx, fh *multipart.FileHeader) (*models.StatementInfo, error) {
	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := c.SaveFile(fh, tmp.Name()); err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}
	return h.Converter.ProcessFile(tmp.Name(), filepath.Base(fh.Filename))
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
