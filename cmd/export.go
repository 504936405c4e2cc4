package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"facturex/internal/config"
	"facturex/internal/export"
	"facturex/internal/loader"
	"facturex/internal/logger"
	"facturex/pkg/models"
)

var exportCmd = &cobra.Command{
	Use:   "export [invoices-file]",
	Short: "Generate an accounting export file from an invoice collection",
	Long: `Read an invoice collection from a JSON, CSV or XLSX file, optionally
filter it by issue-date range, and write one export file in the chosen
format.

Formats:
  csv    - semicolon-delimited French report, UTF-8 with BOM
  excel  - HTML-table report for Excel (application/vnd.ms-excel)
  fec    - Fichier des Écritures Comptables (pipe-delimited, no header)
  sage   - Sage flat-file ledger import
  cegid  - Cegid flat-file ledger import
  pdf    - printable tabular report

FEC, Sage and Cegid produce balanced double-entry postings: one client
debit per invoice followed by a credit-sales and a credit-VAT row per
VAT bracket, all sharing one journal entry number.

Optional environment variables:
  FACTUREX_OUTPUT_DIR   - directory export files are written into (default .)
  FACTUREX_JOURNAL_CODE - sales journal code for ledger formats (default VTE)
  FACTUREX_COMPANY_NAME - company name shown on PDF reports`,
	Example: `  # Export everything as a CSV report
  facturex export invoices.json

  # Statutory FEC file for the 2025 fiscal year
  facturex export invoices.json --format fec --from 2025-01-01 --to 2025-12-31

  # Sage import for one month, machine-readable result
  facturex export invoices.json --format sage --from 01/03/2025 --to 31/03/2025 --json

  # XLSX input, PDF report into a specific directory
  facturex export invoices.xlsx --format pdf --out ./exports`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "csv",
		fmt.Sprintf("Export format (%s)", strings.Join(export.FormatNames(), ", ")))
	exportCmd.Flags().String("from", "", "Start of the issue-date range (YYYY-MM-DD or DD/MM/YYYY), inclusive")
	exportCmd.Flags().String("to", "", "End of the issue-date range (YYYY-MM-DD or DD/MM/YYYY), inclusive")
	exportCmd.Flags().StringP("out", "o", "", "Output directory (overrides FACTUREX_OUTPUT_DIR)")
	exportCmd.Flags().Bool("json", false, "Output the result metadata as JSON")
}

func runExport(cmd *cobra.Command, args []string) error {
	runID := uuid.New().String()
	log := logger.WithRunID(logger.WithComponent("export"), runID)

	formatName, _ := cmd.Flags().GetString("format")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	outDir, _ := cmd.Flags().GetString("out")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	inputPath := args[0]

	log.Info().
		Str("file", inputPath).
		Str("format", formatName).
		Str("from", fromStr).
		Str("to", toStr).
		Msg("Starting invoice export")

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	rng, err := parseRange(fromStr, toStr)
	if err != nil {
		return err
	}

	if err := validateInputFile(inputPath, log); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	invoices, err := loader.Load(inputPath)
	if err != nil {
		log.Error().Err(err).Str("file", inputPath).Msg("Failed to load invoices")
		return fmt.Errorf("failed to load invoices: %w", err)
	}

	service, err := export.NewService(format, export.Options{
		JournalCode: cfg.JournalCode,
		CompanyName: cfg.CompanyName,
	})
	if err != nil {
		return fmt.Errorf("failed to create export service: %w", err)
	}

	startTime := time.Now()
	file, err := service.Export(invoices, rng)
	if err != nil {
		return handleExportError(err, log)
	}

	path, err := service.Save(outDir, file)
	if err != nil {
		log.Error().Err(err).Str("dir", outDir).Msg("Failed to write export file")
		return fmt.Errorf("failed to write export file: %w", err)
	}
	duration := time.Since(startTime)

	log.Info().
		Str("path", path).
		Str("format", format.String()).
		Int("bytes", len(file.Data)).
		Dur("duration", duration).
		Msg("Export completed successfully")

	if jsonOutput {
		return outputExportJSON(path, file.MIME, format, file.Invoices, len(file.Data), duration)
	}
	return outputExportConsole(path, format, rng, file.Invoices, len(file.Data))
}

// parseRange builds the optional date filter from the --from/--to flags.
func parseRange(fromStr, toStr string) (*models.DateRange, error) {
	if fromStr == "" && toStr == "" {
		return nil, nil
	}
	rng := &models.DateRange{}
	if fromStr != "" {
		from, err := parseDayFlag(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --from date: %w", err)
		}
		rng.From = &from
	}
	if toStr != "" {
		to, err := parseDayFlag(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --to date: %w", err)
		}
		rng.To = &to
	}
	if rng.From != nil && rng.To != nil && rng.To.Before(*rng.From) {
		return nil, fmt.Errorf("--to (%s) is before --from (%s)", toStr, fromStr)
	}
	return rng, nil
}

// parseDayFlag accepts ISO and French day formats.
func parseDayFlag(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q (expected YYYY-MM-DD or DD/MM/YYYY)", s)
}

// validateInputFile checks the invoices file before loading
func validateInputFile(path string, log zerolog.Logger) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().
				Str("file", path).
				Msg("Invoices file not found")
			return fmt.Errorf("invoices file not found: %s", path)
		}
		if os.IsPermission(err) {
			log.Error().
				Str("file", path).
				Msg("Permission denied accessing invoices file")
			return fmt.Errorf("permission denied accessing invoices file: %s", path)
		}
		return fmt.Errorf("error accessing invoices file: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		log.Error().
			Str("file", path).
			Msg("Path is not a regular file")
		return fmt.Errorf("path is not a regular file: %s", path)
	}

	if fileInfo.Size() == 0 {
		log.Error().
			Str("file", path).
			Msg("Invoices file is empty")
		return fmt.Errorf("invoices file is empty: %s", path)
	}

	return nil
}

// handleExportError provides user-friendly error messages for export failures
func handleExportError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Export failed")

	switch {
	case errors.Is(err, export.ErrNoInvoices):
		// The EmptyRangeError message is already the French text shown to
		// the user; pass it through untouched.
		return err
	case errors.Is(err, export.ErrUnknownFormat):
		return fmt.Errorf("unknown export format (expected %s)", strings.Join(export.FormatNames(), ", "))
	default:
		return fmt.Errorf("export failed: %w", err)
	}
}

// outputExportJSON outputs the export result as JSON
func outputExportJSON(path, mime string, format export.Format, exported, size int, duration time.Duration) error {
	output := map[string]interface{}{
		"path":          path,
		"format":        format.String(),
		"mime":          mime,
		"invoice_count": exported,
		"size_bytes":    size,
		"metadata": map[string]interface{}{
			"processing_duration_ms": duration.Milliseconds(),
			"generated_at":           time.Now(),
			"tool_version":           version,
		},
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	fmt.Println(string(jsonData))
	return nil
}

// outputExportConsole outputs the export result in a formatted console display
func outputExportConsole(path string, format export.Format, rng *models.DateRange, exported, size int) error {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("                             EXPORT COMPTABLE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()
	fmt.Printf("Format:   %s\n", format)
	fmt.Printf("Période:  %s\n", rng.Describe())
	fmt.Printf("Factures: %d\n", exported)
	fmt.Printf("Fichier:  %s (%d octets)\n", path, size)
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	return nil
}
