package export

import (
	"fmt"
	"strings"
	"time"

	"facturex/pkg/models"
)

// ledgerRow is one double-entry posting line shared by the FEC, Sage and
// Cegid emitters. Amounts stay unrounded floats; each emitter rounds at
// serialization time.
type ledgerRow struct {
	entryNum   string // journal entry number, shared by all rows of one invoice
	date       time.Time
	hasDate    bool
	account    string
	accountLib string
	aux        string // auxiliary client account, debit row only
	auxLib     string
	piece      string // invoice document reference
	label      string
	debit      float64
	credit     float64
}

// entryNumber formats the sequential journal entry number, e.g. VTE00000001.
func entryNumber(journal string, seq int) string {
	return fmt.Sprintf("%s%08d", journal, seq)
}

// ledgerRows turns one invoice into its balanced posting rows: exactly one
// debit row on the client account for the TTC total, then one credit-sales
// and one credit-VAT row per non-empty VAT bracket. All rows share one entry
// number so downstream systems treat them as a single atomic écriture.
func ledgerRows(journal string, seq int, inv *models.Invoice) []ledgerRow {
	num := entryNumber(journal, seq)
	issued, hasDate := NormalizeDate(inv.IssueDate)
	ttc, _ := asFloat(inv.FinalTotalTTC)
	piece := inv.FullNumber()
	base := fmt.Sprintf("Facture %s - %s", piece, inv.Client.Name)

	brackets := Allocate(inv)

	rows := make([]ledgerRow, 0, 1+2*len(brackets))
	rows = append(rows, ledgerRow{
		entryNum:   num,
		date:       issued,
		hasDate:    hasDate,
		account:    accountClients,
		accountLib: "Clients",
		aux:        auxiliaryAccount(inv.Client.Name),
		auxLib:     inv.Client.Name,
		piece:      piece,
		label:      base,
		debit:      ttc,
	})

	for _, b := range brackets {
		rows = append(rows, ledgerRow{
			entryNum:   num,
			date:       issued,
			hasDate:    hasDate,
			account:    accountSales,
			accountLib: "Ventes de prestations",
			piece:      piece,
			label:      base + " - Vente " + b.RateLabel(),
			credit:     b.NetHT,
		})
		rows = append(rows, ledgerRow{
			entryNum:   num,
			date:       issued,
			hasDate:    hasDate,
			account:    b.Account(),
			accountLib: "TVA collectée " + b.RateLabel(),
			piece:      piece,
			label:      base + " - TVA " + b.RateLabel(),
			credit:     b.VatAmount(),
		})
	}
	return rows
}

// auxiliaryAccount derives a short auxiliary client account code from the
// client name: uppercase letters and digits only, capped at 8 characters,
// prefixed with C. An unnamed client maps to the generic CDIVERS.
func auxiliaryAccount(clientName string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(clientName) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= 8 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "CDIVERS"
	}
	return "C" + b.String()
}
