package http

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Prahallad321/invoice-qc-service/internal/invoice"
	"github.com/Prahallad321/invoice-qc-service/internal/report"
	"github.com/Prahallad321/invoice-qc-service/internal/validator"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	extractor       *invoice.Extractor
	renderer        *report.PDFRenderer
	reportsJSONPath string
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(extractor *invoice.Extractor, renderer *report.PDFRenderer, reportsJSONPath string, logger Logger) *Handlers {
	return &Handlers{
		extractor:       extractor,
		renderer:        renderer,
		reportsJSONPath: reportsJSONPath,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// BatchResponse is the payload of the batch extract+validate endpoint.
type BatchResponse struct {
	Extracted  []*invoice.Invoice `json:"extracted"`
	Validation *validator.Report  `json:"validation"`
	Failures   []string           `json:"failures,omitempty"`
}

// ReportPDFResponse carries a rendered QC report as hex-encoded bytes.
type ReportPDFResponse struct {
	InvoiceID string `json:"invoice_id"`
	PDFHex    string `json:"pdf_hex"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// ExtractAndValidate handles POST /api/extract-and-validate. It accepts
// a multipart batch of PDF uploads, extracts one invoice per file and
// validates the batch in upload order. A file that cannot be parsed as
// a PDF is reported under failures; the rest of the batch proceeds.
func (h *Handlers) ExtractAndValidate(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "no files uploaded"})
		return
	}

	invoices := make([]*invoice.Invoice, 0, len(files))
	var failures []string

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("Failed to open upload", "filename", fh.Filename, "error", err)
			failures = append(failures, invoice.FileError{File: fh.Filename, Err: err}.Error())
			continue
		}

		inv, err := h.extractor.ExtractFromReader(f, fh.Filename)
		f.Close()
		if err != nil {
			h.logger.Error("Failed to extract invoice", "filename", fh.Filename, "error", err)
			failures = append(failures, invoice.FileError{File: fh.Filename, Err: err}.Error())
			continue
		}

		invoices = append(invoices, inv)
	}

	payload := BatchResponse{
		Extracted:  invoices,
		Validation: validator.ValidateInvoices(invoices),
		Failures:   failures,
	}

	h.persistPayload(payload)

	c.JSON(http.StatusOK, Response{Success: true, Data: payload})
}

// persistPayload writes the latest batch payload to the configured
// reports path. An unwritable path is logged, not surfaced; the caller
// still gets the in-memory report.
func (h *Handlers) persistPayload(payload BatchResponse) {
	if h.reportsJSONPath == "" {
		return
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		h.logger.Error("Failed to marshal report payload", "error", err)
		return
	}
	if err := os.WriteFile(h.reportsJSONPath, data, 0644); err != nil {
		h.logger.Error("Failed to write report payload", "path", h.reportsJSONPath, "error", err)
	}
}

// ValidateJSON handles POST /api/validate: a JSON array of invoice
// records in, a validation report out. No extraction involved.
func (h *Handlers) ValidateJSON(c *gin.Context) {
	var invoices []*invoice.Invoice
	if err := c.ShouldBindJSON(&invoices); err != nil {
		h.logger.Error("Invalid invoice payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid invoice payload"})
		return
	}

	for i, inv := range invoices {
		if inv == nil {
			h.logger.Error("Null invoice record in payload", "index", i)
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invoice records must not be null"})
			return
		}
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: validator.ValidateInvoices(invoices)})
}

// GenerateReportPDF handles POST /api/report-pdf. The body is one
// invoice record; the optional is_valid query parameter colors the
// status cell. The PDF comes back hex-encoded inside the JSON envelope.
func (h *Handlers) GenerateReportPDF(c *gin.Context) {
	var inv invoice.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		h.logger.Error("Invalid invoice payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid invoice payload"})
		return
	}

	var status *bool
	if raw, ok := c.GetQuery("is_valid"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid is_valid value"})
			return
		}
		status = &v
	}

	var buf bytes.Buffer
	if err := h.renderer.WritePDF(&inv, status, &buf); err != nil {
		h.logger.Error("Failed to render report PDF", "invoice_id", inv.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to render report"})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: ReportPDFResponse{
			InvoiceID: inv.ID(),
			PDFHex:    hex.EncodeToString(buf.Bytes()),
		},
	})
}
