package loader

import (
	"math"
	"strconv"

	"github.com/rs/zerolog"

	"facturex/internal/export"
	"facturex/pkg/models"
)

// warnRecords runs consistency checks over loaded invoices. Problems are
// logged, never fatal: exports proceed with whatever the record carries.
func warnRecords(invoices []models.Invoice, log zerolog.Logger) {
	for i := range invoices {
		inv := &invoices[i]
		num := inv.FullNumber()

		if inv.Number == "" {
			log.Warn().Int("index", i).Msg("Invoice has no number")
		}

		if _, ok := export.NormalizeDate(inv.IssueDate); !ok && inv.IssueDate != nil {
			log.Warn().
				Str("invoice", num).
				Interface("issue_date", inv.IssueDate).
				Msg("Issue date is unparsable; invoice will be excluded from date-filtered exports")
		}

		ht := amountOf(inv.FinalTotalHT)
		vat := amountOf(inv.FinalTotalVAT)
		ttc := amountOf(inv.FinalTotalTTC)
		if ttc != 0 && math.Abs(ht+vat-ttc) > 0.01 {
			log.Warn().
				Str("invoice", num).
				Float64("ht", ht).
				Float64("vat", vat).
				Float64("ttc", ttc).
				Msg("Invoice totals do not add up (HT + TVA != TTC)")
		}

		// Known ledger asymmetry: without line items the VAT posting takes
		// finalTotalVAT verbatim, so a global discount never reaches it.
		if discount := amountOf(inv.DiscountAmount); discount != 0 && !inv.HasItems() {
			log.Warn().
				Str("invoice", num).
				Float64("discount", discount).
				Msg("Invoice has a discount but no line items; the VAT ledger row will carry the stored VAT total unadjusted")
		}
	}
}

// amountOf parses a loose numeric value, zero on failure.
func amountOf(value any) float64 {
	f, err := strconv.ParseFloat(export.NormalizeAmount(value), 64)
	if err != nil {
		return 0
	}
	return f
}
