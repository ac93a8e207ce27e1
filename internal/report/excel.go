package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Prahallad321/invoice-qc-service/internal/validator"
)

// ExcelWriter exports a validation report as an XLSX workbook with a
// Results sheet and a Summary sheet.
type ExcelWriter struct {
	logger *zap.Logger
}

// NewExcelWriter creates an XLSX report writer.
func NewExcelWriter(logger *zap.Logger) *ExcelWriter {
	return &ExcelWriter{logger: logger}
}

// Write saves the report workbook to outputPath.
func (w *ExcelWriter) Write(rep *validator.Report, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	const resultsSheet = "Results"
	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("failed to set sheet name: %w", err)
	}

	w.setRow(f, resultsSheet, 1, []interface{}{"Invoice ID", "Valid", "Errors"})
	for i, res := range rep.Results {
		w.setRow(f, resultsSheet, i+2, []interface{}{
			res.InvoiceID,
			res.IsValid,
			strings.Join(res.Errors, ", "),
		})
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	w.setRow(f, summarySheet, 1, []interface{}{"Total invoices", rep.Summary.TotalInvoices})
	w.setRow(f, summarySheet, 2, []interface{}{"Valid invoices", rep.Summary.ValidInvoices})
	w.setRow(f, summarySheet, 3, []interface{}{"Invalid invoices", rep.Summary.InvalidInvoices})
	w.setRow(f, summarySheet, 5, []interface{}{"Error code", "Count"})

	codes := make([]string, 0, len(rep.Summary.ErrorCounts))
	for code := range rep.Summary.ErrorCounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for i, code := range codes {
		w.setRow(f, summarySheet, 6+i, []interface{}{code, rep.Summary.ErrorCounts[code]})
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Validation report workbook written",
		zap.String("output_path", outputPath),
		zap.Int("result_count", len(rep.Results)))

	return nil
}

// setRow writes one row starting at column A.
func (w *ExcelWriter) setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.logger.Warn("Invalid cell coordinates", zap.Int("row", row), zap.Error(err))
		return
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		w.logger.Warn("Failed to set sheet row",
			zap.String("sheet", sheet),
			zap.Int("row", row),
			zap.Error(err))
	}
}
