package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"facturex/internal/export"
	"facturex/internal/loader"
	"facturex/internal/logger"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [invoices-file]",
	Short: "Show the VAT ledger summary for an invoice collection",
	Long: `Read an invoice collection, optionally filter it by issue-date range,
and display the VAT bracket totals that a ledger export would post:
net HT and collected VAT per rate, plus the invoices allocated in
degraded mode (no line items, VAT taken verbatim from the totals).

Nothing is written to disk; this is a dry-run view of the allocation.`,
	Example: `  # VAT summary over the whole collection
  facturex summary invoices.json

  # Summary for one quarter, as JSON
  facturex summary invoices.json --from 2025-01-01 --to 2025-03-31 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().String("from", "", "Start of the issue-date range (YYYY-MM-DD or DD/MM/YYYY), inclusive")
	summaryCmd.Flags().String("to", "", "End of the issue-date range (YYYY-MM-DD or DD/MM/YYYY), inclusive")
	summaryCmd.Flags().Bool("json", false, "Output the summary as JSON")
}

// rateSummary accumulates the ledger amounts of one VAT rate bracket across
// the filtered collection.
type rateSummary struct {
	Rate     string  `json:"rate"`
	NetHT    float64 `json:"net_ht"`
	VAT      float64 `json:"vat"`
	Invoices int     `json:"invoices"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("summary")

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	inputPath := args[0]

	rng, err := parseRange(fromStr, toStr)
	if err != nil {
		return err
	}
	if err := validateInputFile(inputPath, log); err != nil {
		return err
	}

	invoices, err := loader.Load(inputPath)
	if err != nil {
		log.Error().Err(err).Str("file", inputPath).Msg("Failed to load invoices")
		return fmt.Errorf("failed to load invoices: %w", err)
	}

	filtered := export.FilterByRange(invoices, rng)
	if len(filtered) == 0 {
		return handleExportError(&export.EmptyRangeError{Range: rng, Total: len(invoices)}, log)
	}

	byRate := map[string]*rateSummary{}
	degraded := 0
	var totalHT, totalVAT float64
	for i := range filtered {
		brackets := export.Allocate(&filtered[i])
		seen := map[string]bool{}
		for _, b := range brackets {
			if b.HasFixedVAT {
				degraded++
			}
			key := b.RateLabel()
			s := byRate[key]
			if s == nil {
				s = &rateSummary{Rate: key}
				byRate[key] = s
			}
			s.NetHT += b.NetHT
			s.VAT += b.VatAmount()
			if !seen[key] {
				s.Invoices++
				seen[key] = true
			}
			totalHT += b.NetHT
			totalVAT += b.VatAmount()
		}
	}

	summaries := make([]rateSummary, 0, len(byRate))
	for _, s := range byRate {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Rate > summaries[j].Rate })

	log.Info().
		Int("invoices", len(filtered)).
		Int("brackets", len(summaries)).
		Int("degraded", degraded).
		Msg("VAT summary computed")

	if jsonOutput {
		output := map[string]interface{}{
			"period":            rng.Describe(),
			"invoices":          len(filtered),
			"degraded_invoices": degraded,
			"brackets":          summaries,
			"total_ht":          totalHT,
			"total_vat":         totalVAT,
		}
		jsonData, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("                            RÉCAPITULATIF TVA")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()
	fmt.Printf("Période:  %s\n", rng.Describe())
	fmt.Printf("Factures: %d\n", len(filtered))
	fmt.Println()
	fmt.Printf("%-12s %15s %15s %10s\n", "Taux", "Base HT (€)", "TVA (€)", "Factures")
	fmt.Println(strings.Repeat("-", 56))
	for _, s := range summaries {
		fmt.Printf("%-12s %15.2f %15.2f %10d\n", s.Rate, s.NetHT, s.VAT, s.Invoices)
	}
	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("%-12s %15.2f %15.2f\n", "Total", totalHT, totalVAT)
	if degraded > 0 {
		fmt.Println()
		fmt.Printf("Attention: %d facture(s) sans lignes détaillées (TVA reprise des totaux).\n", degraded)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	return nil
}
