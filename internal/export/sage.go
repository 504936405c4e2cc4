package export

import (
	"bytes"
	"strings"

	"facturex/pkg/models"
)

// sageEmitter writes the Sage flat-file import: semicolon-delimited posting
// rows under a fixed 9-column header, with an auxiliary client account on
// the receivable row.
type sageEmitter struct {
	journal string
}

const sageHeader = "Journal;Date;Compte;CompteAux;Libellé;Débit;Crédit;Lettrage;Pièce"

func (e *sageEmitter) emit(invoices []models.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(sageHeader)
	buf.WriteByte('\n')
	for i := range invoices {
		for _, row := range ledgerRows(e.journal, i+1, &invoices[i]) {
			buf.WriteString(e.line(row))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func (e *sageEmitter) line(row ledgerRow) string {
	date := ""
	if row.hasDate {
		date = row.date.Format(displayDateLayout)
	}
	fields := []string{
		e.journal,
		date,
		row.account,
		Sanitize(row.aux, ';', maxLabelFieldLen),
		Sanitize(row.label, ';', maxLabelFieldLen),
		NormalizeAmount(row.debit),
		NormalizeAmount(row.credit),
		"", // Lettrage
		Sanitize(row.piece, ';', maxLabelFieldLen),
	}
	return strings.Join(fields, ";")
}
