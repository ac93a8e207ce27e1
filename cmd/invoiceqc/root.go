package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "invoiceqc",
	Short: "Invoice QC: extract, validate and report on PDF invoices",
	Long: `invoiceqc extracts structured data from semi-structured PDF invoices,
validates the extracted records against completeness, format and
business rules, and renders one QC report PDF per invoice.`,
	SilenceUsage: true,
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
