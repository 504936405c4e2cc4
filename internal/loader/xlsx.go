package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"facturex/internal/logger"
	"facturex/pkg/models"
)

// ReadXLSX reads a flat invoice table from the first sheet of an XLSX
// workbook. The first row is the header; the same column aliases as the CSV
// reader apply.
func ReadXLSX(path string) ([]models.Invoice, error) {
	const op = "ReadXLSX"
	log := logger.WithComponent("loader-xlsx")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open %s: %w", op, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: workbook %s has no sheets", op, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %q: %w", op, sheet, err)
	}

	invoices := invoicesFromTable(rows, log)
	warnRecords(invoices, log)

	log.Info().
		Str("file", path).
		Str("sheet", sheet).
		Int("rows", len(rows)).
		Int("invoices", len(invoices)).
		Msg("Invoices loaded from XLSX")

	return invoices, nil
}
