package export

import (
	"bytes"
	"strings"

	"facturex/pkg/models"
)

// fecEmitter writes the Fichier des Écritures Comptables: pipe-delimited,
// 18 fixed columns, one physical line per posting row and, as mandated by
// the tax-authority specification, no header line.
//
// Column order: JournalCode|JournalLib|EcritureNum|EcritureDate|CompteNum|
// CompteLib|CompAuxNum|CompAuxLib|PieceRef|PieceDate|EcritureLib|Debit|
// Credit|EcritureLet|DateLet|ValidDate|Montantdevise|Idevise
type fecEmitter struct {
	journal string
}

const fecDateLayout = "20060102"

func (e *fecEmitter) emit(invoices []models.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	for i := range invoices {
		for _, row := range ledgerRows(e.journal, i+1, &invoices[i]) {
			buf.WriteString(e.line(row))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func (e *fecEmitter) line(row ledgerRow) string {
	date := ""
	if row.hasDate {
		date = row.date.Format(fecDateLayout)
	}
	fields := []string{
		e.journal,                                     // JournalCode
		"Ventes",                                      // JournalLib
		row.entryNum,                                  // EcritureNum
		date,                                          // EcritureDate
		row.account,                                   // CompteNum
		Sanitize(row.accountLib, '|', maxFECFieldLen), // CompteLib
		"", // CompAuxNum
		"", // CompAuxLib
		Sanitize(row.piece, '|', maxFECFieldLen), // PieceRef
		date,                                     // PieceDate
		Sanitize(row.label, '|', maxFECFieldLen), // EcritureLib
		NormalizeAmount(row.debit),               // Debit
		NormalizeAmount(row.credit),              // Credit
		"",                                       // EcritureLet
		"",                                       // DateLet
		date,                                     // ValidDate
		"",                                       // Montantdevise
		"",                                       // Idevise
	}
	return strings.Join(fields, "|")
}
