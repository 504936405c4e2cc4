package export

import "facturex/pkg/models"

// displayDateLayout is the French date rendering used by the flat report
// formats and the Sage/Cegid row dates.
const displayDateLayout = "02/01/2006"

// flatHeader is the column set of the denormalized report formats (CSV,
// Excel, PDF): one row per invoice, flat business fields, no ledger coding.
var flatHeader = []string{
	"Numéro",
	"Date d'émission",
	"Date d'échéance",
	"Client",
	"Email",
	"SIRET",
	"N° TVA",
	"Adresse",
	"Code postal",
	"Ville",
	"Pays",
	"Total HT (€)",
	"TVA (€)",
	"Total TTC (€)",
	"Remise (€)",
	"Statut",
	"Acompte",
	"N° bon de commande",
}

// flatRow renders one invoice as a flat report record, in flatHeader order.
func flatRow(inv *models.Invoice) []string {
	deposit := "Non"
	if inv.IsDeposit {
		deposit = "Oui"
	}
	return []string{
		inv.FullNumber(),
		displayDate(inv.IssueDate),
		displayDate(inv.DueDate),
		inv.Client.Name,
		inv.Client.Email,
		inv.Client.Siret,
		inv.Client.VatNumber,
		inv.Client.Address.Street,
		inv.Client.Address.PostalCode,
		inv.Client.Address.City,
		inv.Client.Address.Country,
		NormalizeAmount(inv.FinalTotalHT),
		NormalizeAmount(inv.FinalTotalVAT),
		NormalizeAmount(inv.FinalTotalTTC),
		NormalizeAmount(inv.DiscountAmount),
		inv.Status.Label(),
		deposit,
		inv.PurchaseOrderNumber,
	}
}

// displayDate formats an ambiguous date value for display, or returns the
// empty string when the value cannot be normalized.
func displayDate(value any) string {
	t, ok := NormalizeDate(value)
	if !ok {
		return ""
	}
	return t.Format(displayDateLayout)
}
