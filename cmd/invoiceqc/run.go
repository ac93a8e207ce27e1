package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Prahallad321/invoice-qc-service/internal/invoice"
	"github.com/Prahallad321/invoice-qc-service/internal/report"
	"github.com/Prahallad321/invoice-qc-service/internal/validator"
	"github.com/Prahallad321/invoice-qc-service/pkg/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract and validate a directory of PDF invoices",
	Long: `Extract every *.pdf in a directory, validate the batch, write the
combined JSON report and render one QC report PDF per invoice. Files
that cannot be parsed as PDFs are reported and skipped; the rest of the
batch still runs. The command exits non-zero when any invoice fails
validation.`,
	Example: `  # Validate a folder of invoices with default output locations
  invoiceqc run --pdf-dir ./invoices

  # Custom outputs plus an XLSX summary workbook
  invoiceqc run --pdf-dir ./invoices --json-out out/reports.json \
    --pdf-out-dir out/reports --xlsx-out out/reports.xlsx`,
	RunE: runBatch,
}

// batchPayload is the JSON document written to --json-out.
type batchPayload struct {
	Extracted  []*invoice.Invoice `json:"extracted"`
	Validation *validator.Report  `json:"validation"`
	Failures   []string           `json:"failures,omitempty"`
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("pdf-dir", "", "Directory with PDF invoices [REQUIRED]")
	runCmd.Flags().String("json-out", "reports.json", "Output JSON report file")
	runCmd.Flags().String("pdf-out-dir", "invoice_reports", "Directory for per-invoice PDF reports")
	runCmd.Flags().String("xlsx-out", "", "Optional XLSX report workbook")

	runCmd.MarkFlagRequired("pdf-dir")
}

func runBatch(cmd *cobra.Command, args []string) error {
	pdfDir, _ := cmd.Flags().GetString("pdf-dir")
	jsonOut, _ := cmd.Flags().GetString("json-out")
	pdfOutDir, _ := cmd.Flags().GetString("pdf-out-dir")
	xlsxOut, _ := cmd.Flags().GetString("xlsx-out")

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      logLevel,
		OutputPath: "stderr",
		Format:     "console",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(pdfOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", pdfOutDir, err)
	}

	extractor := invoice.NewExtractor(logger)
	invoices, failures, err := extractor.ExtractFromDir(pdfDir)
	if err != nil {
		return err
	}

	for _, fe := range failures {
		fmt.Printf("  - SKIPPED: %s\n", fe.Error())
	}

	validation := validator.ValidateInvoices(invoices)

	payload := batchPayload{
		Extracted:  invoices,
		Validation: validation,
	}
	for _, fe := range failures {
		payload.Failures = append(payload.Failures, fe.Error())
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report payload: %w", err)
	}
	if err := os.WriteFile(jsonOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", jsonOut, err)
	}
	fmt.Printf("Saved reports.json -> %s\n", jsonOut)

	validMap := make(map[string]bool, len(validation.Results))
	for _, res := range validation.Results {
		validMap[res.InvoiceID] = res.IsValid
	}

	renderer := report.NewPDFRenderer()
	for _, inv := range invoices {
		id := inv.ID()
		isValid := validMap[id]
		outPDF := filepath.Join(pdfOutDir, utils.SanitizeID(id)+".pdf")

		if err := renderer.CreateFile(inv, &isValid, outPDF); err != nil {
			logger.Error("Failed to render QC report", zap.String("invoice_id", id), zap.Error(err))
			continue
		}

		label := "INVALID"
		if isValid {
			label = "VALID"
		}
		fmt.Printf("  - %s: %s\n", label, outPDF)
	}

	if xlsxOut != "" {
		if err := report.NewExcelWriter(logger).Write(validation, xlsxOut); err != nil {
			return err
		}
		fmt.Printf("Saved workbook -> %s\n", xlsxOut)
	}

	s := validation.Summary
	fmt.Println("\nSummary:")
	fmt.Printf("  Total   : %d\n", s.TotalInvoices)
	fmt.Printf("  Valid   : %d\n", s.ValidInvoices)
	fmt.Printf("  Invalid : %d\n", s.InvalidInvoices)

	if s.InvalidInvoices > 0 {
		logger.Sync()
		os.Exit(1)
	}
	return nil
}
