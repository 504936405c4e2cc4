// Package loader reads invoice collections from local files, replacing the
// upstream data-fetching layer. JSON carries the full invoice shape
// including line items; CSV and XLSX are flat tabular forms without line
// items, so invoices loaded from them allocate VAT in degraded
// invoice-totals mode.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"facturex/pkg/models"
)

// ErrUnsupportedInput is returned for input files whose extension maps to no
// known reader.
var ErrUnsupportedInput = errors.New("unsupported input file type")

// Load reads an invoice collection from path, dispatching on the file
// extension (.json, .csv, .xlsx). Record-level problems are logged and the
// record skipped; only file-level failures return an error.
func Load(path string) ([]models.Invoice, error) {
	const op = "Load"

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(path)
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, fmt.Errorf("%s: %w: %s", op, ErrUnsupportedInput, path)
	}
}
