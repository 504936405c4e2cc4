package loader

import (
	"strings"

	"github.com/rs/zerolog"

	"facturex/pkg/models"
)

// columnAliases maps normalized header names to canonical invoice fields.
// Both the JSON wire names and common French report headers are accepted.
var columnAliases = map[string]string{
	"number":              "number",
	"numero":              "number",
	"numéro":              "number",
	"prefix":              "prefix",
	"issuedate":           "issueDate",
	"date d'emission":     "issueDate",
	"date d'émission":     "issueDate",
	"duedate":             "dueDate",
	"date d'echeance":     "dueDate",
	"date d'échéance":     "dueDate",
	"createdat":           "createdAt",
	"finaltotalht":        "finalTotalHT",
	"total ht":            "finalTotalHT",
	"finaltotalvat":       "finalTotalVAT",
	"tva":                 "finalTotalVAT",
	"finaltotalttc":       "finalTotalTTC",
	"total ttc":           "finalTotalTTC",
	"discount":            "discount",
	"discountamount":      "discountAmount",
	"remise":              "discountAmount",
	"discounttype":        "discountType",
	"status":              "status",
	"statut":              "status",
	"isdeposit":           "isDeposit",
	"acompte":             "isDeposit",
	"purchaseordernumber": "purchaseOrderNumber",
	"clientname":          "clientName",
	"client":              "clientName",
	"clientemail":         "clientEmail",
	"email":               "clientEmail",
	"clientsiret":         "clientSiret",
	"siret":               "clientSiret",
	"clientvatnumber":     "clientVatNumber",
	"clienttype":          "clientType",
	"street":              "street",
	"adresse":             "street",
	"postalcode":          "postalCode",
	"code postal":         "postalCode",
	"city":                "city",
	"ville":               "city",
	"country":             "country",
	"pays":                "country",
}

// invoicesFromTable converts tabular rows (first row = header) into
// invoices. Rows without an invoice number are skipped with a warning, per
// the silent-degradation policy: a bulk load proceeds despite isolated bad
// records.
func invoicesFromTable(rows [][]string, log zerolog.Logger) []models.Invoice {
	if len(rows) == 0 {
		return nil
	}

	columns := make(map[int]string, len(rows[0]))
	for i, header := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		if field, ok := columnAliases[key]; ok {
			columns[i] = field
		}
	}
	if len(columns) == 0 {
		log.Warn().Msg("No recognized columns in header row")
		return nil
	}

	invoices := make([]models.Invoice, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // header plus 1-based indexing

		inv, ok := invoiceFromRow(row, columns)
		if !ok {
			log.Warn().
				Int("row", rowNum).
				Msg("Skipping row without invoice number")
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices
}

// invoiceFromRow maps one data row through the resolved column set. Dates
// and amounts stay raw strings; the export normalizer resolves them.
func invoiceFromRow(row []string, columns map[int]string) (models.Invoice, bool) {
	var inv models.Invoice
	for i, field := range columns {
		if i >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		switch field {
		case "number":
			inv.Number = value
		case "prefix":
			inv.Prefix = value
		case "issueDate":
			inv.IssueDate = value
		case "dueDate":
			inv.DueDate = value
		case "createdAt":
			inv.CreatedAt = value
		case "finalTotalHT":
			inv.FinalTotalHT = value
		case "finalTotalVAT":
			inv.FinalTotalVAT = value
		case "finalTotalTTC":
			inv.FinalTotalTTC = value
		case "discount":
			inv.Discount = value
		case "discountAmount":
			inv.DiscountAmount = value
		case "discountType":
			inv.DiscountType = models.DiscountType(strings.ToUpper(value))
		case "status":
			inv.Status = models.InvoiceStatus(strings.ToUpper(value))
		case "isDeposit":
			inv.IsDeposit = isTruthy(value)
		case "purchaseOrderNumber":
			inv.PurchaseOrderNumber = value
		case "clientName":
			inv.Client.Name = value
		case "clientEmail":
			inv.Client.Email = value
		case "clientSiret":
			inv.Client.Siret = value
		case "clientVatNumber":
			inv.Client.VatNumber = value
		case "clientType":
			inv.Client.Type = models.ClientType(strings.ToUpper(value))
		case "street":
			inv.Client.Address.Street = value
		case "postalCode":
			inv.Client.Address.PostalCode = value
		case "city":
			inv.Client.Address.City = value
		case "country":
			inv.Client.Address.Country = value
		}
	}
	return inv, inv.Number != ""
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "oui", "yes":
		return true
	default:
		return false
	}
}
