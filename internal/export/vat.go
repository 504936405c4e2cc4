package export

import (
	"strconv"

	"facturex/pkg/models"
)

// French general-ledger accounts used by the double-entry formats.
const (
	accountClients = "411000" // client receivables, debited with the TTC total
	accountSales   = "706000" // service sales, credited with the net HT
)

// vatAccounts maps a statutory VAT rate to its collected-VAT account.
var vatAccounts = map[float64]string{
	20:  "445710",
	10:  "445711",
	5.5: "445712",
	2.1: "445713",
	0:   "445714",
}

// vatAccountDefault receives postings whose rate is unknown or outside the
// statutory map.
const vatAccountDefault = "445710"

// VatBracket is the net HT accumulated over the line items of one invoice
// sharing a single VAT rate, after discount allocation. Brackets are
// ephemeral: built per invoice during an export, discarded once the ledger
// rows are written.
type VatBracket struct {
	Rate  float64
	NetHT float64

	// FixedVAT carries the invoice-level VAT total verbatim when the invoice
	// has no line items and the rate is therefore unknown. In that degraded
	// mode the VAT posting uses this amount instead of NetHT*Rate, and the
	// global discount never reaches it (it already only applies to
	// finalTotalHT upstream).
	FixedVAT    float64
	HasFixedVAT bool
}

// VatAmount returns the amount posted to the VAT account for this bracket.
// Rounding happens at serialization time only.
func (b VatBracket) VatAmount() float64 {
	if b.HasFixedVAT {
		return b.FixedVAT
	}
	return b.NetHT * b.Rate / 100
}

// Account returns the collected-VAT account for this bracket.
func (b VatBracket) Account() string {
	if b.HasFixedVAT {
		return vatAccountDefault
	}
	if account, ok := vatAccounts[b.Rate]; ok {
		return account
	}
	return vatAccountDefault
}

// RateLabel formats the bracket rate for row labels, e.g. "20%" or "5.5%".
func (b VatBracket) RateLabel() string {
	if b.HasFixedVAT {
		return "forfait"
	}
	return strconv.FormatFloat(b.Rate, 'f', -1, 64) + "%"
}

// Allocate groups an invoice's line amounts by VAT rate and spreads the
// invoice-level discount proportionally across the groups. The sum of the
// returned brackets' NetHT equals finalTotalHT minus the global discount to
// within display rounding; brackets driven to zero or below are dropped.
//
// Without line items a single implicit bracket is produced from the invoice
// totals, with the VAT amount taken verbatim (HasFixedVAT).
func Allocate(inv *models.Invoice) []VatBracket {
	if !inv.HasItems() {
		ht, _ := asFloat(inv.FinalTotalHT)
		if ht <= 0 {
			return nil
		}
		vat, _ := asFloat(inv.FinalTotalVAT)
		return []VatBracket{{NetHT: ht, FixedVAT: vat, HasFixedVAT: true}}
	}

	// Group line HT by raw rate, keeping first-appearance order so row
	// output is deterministic.
	grouped := make(map[float64]float64, len(inv.Items))
	var order []float64
	var total float64
	for _, item := range inv.Items {
		ht := item.NetHT()
		if _, seen := grouped[item.VatRate]; !seen {
			order = append(order, item.VatRate)
		}
		grouped[item.VatRate] += ht
		total += ht
	}

	discount, _ := asFloat(inv.DiscountAmount)

	brackets := make([]VatBracket, 0, len(order))
	for _, rate := range order {
		ht := grouped[rate]
		if discount != 0 && total != 0 {
			ht -= discount * (ht / total)
		}
		if ht <= 0 {
			continue
		}
		brackets = append(brackets, VatBracket{Rate: rate, NetHT: ht})
	}
	return brackets
}
