package export

import (
	"bytes"
	"strings"

	"facturex/pkg/models"
)

// cegidEmitter writes the Cegid flat-file import: semicolon-delimited
// posting rows under a fixed 9-column header, dates in dd/MM/yyyy, with
// journal and piece-number columns and a currency column.
type cegidEmitter struct {
	journal string
}

const cegidHeader = "CodeJournal;Date;NumPiece;CompteGeneral;CompteAuxiliaire;Libelle;Debit;Credit;Devise"

func (e *cegidEmitter) emit(invoices []models.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(cegidHeader)
	buf.WriteByte('\n')
	for i := range invoices {
		for _, row := range ledgerRows(e.journal, i+1, &invoices[i]) {
			buf.WriteString(e.line(row))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func (e *cegidEmitter) line(row ledgerRow) string {
	date := ""
	if row.hasDate {
		date = row.date.Format(displayDateLayout)
	}
	fields := []string{
		e.journal,
		date,
		Sanitize(row.piece, ';', maxLabelFieldLen),
		row.account,
		Sanitize(row.aux, ';', maxLabelFieldLen),
		Sanitize(row.label, ';', maxLabelFieldLen),
		NormalizeAmount(row.debit),
		NormalizeAmount(row.credit),
		"EUR",
	}
	return strings.Join(fields, ";")
}
