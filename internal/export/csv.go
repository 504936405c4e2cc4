package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"facturex/pkg/models"
)

// csvEmitter writes the denormalized report: a semicolon-delimited file with
// a French header row and one record per invoice. Fields are quoted only
// when they contain the delimiter or a quote, with doubled-quote escaping
// (encoding/csv semantics).
type csvEmitter struct{}

func (e *csvEmitter) emit(invoices []models.Invoice) ([]byte, error) {
	const op = "emitCSV"

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	records := make([][]string, 0, len(invoices)+1)
	records = append(records, flatHeader)
	for i := range invoices {
		records = append(records, flatRow(&invoices[i]))
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("%s: failed to write records: %w", op, err)
	}
	return buf.Bytes(), nil
}
