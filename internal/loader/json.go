package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"facturex/internal/logger"
	"facturex/pkg/models"
)

// jsonDocument accepts both a bare invoice array and the wrapped object
// shape produced by API dumps.
type jsonDocument struct {
	Invoices []models.Invoice `json:"invoices"`
}

// ReadJSON reads an invoice collection from a JSON file. The document is
// either a top-level array of invoices or an object with an "invoices" key.
func ReadJSON(path string) ([]models.Invoice, error) {
	const op = "ReadJSON"
	log := logger.WithComponent("loader-json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s: %w", op, path, err)
	}

	var invoices []models.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		var doc jsonDocument
		if docErr := json.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("%s: failed to parse %s: %w", op, path, err)
		}
		invoices = doc.Invoices
	}

	warnRecords(invoices, log)

	log.Info().
		Str("file", path).
		Int("invoices", len(invoices)).
		Msg("Invoices loaded from JSON")

	return invoices, nil
}
