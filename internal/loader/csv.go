package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"facturex/internal/logger"
	"facturex/pkg/models"
)

// ReadCSV reads a flat invoice table from a CSV file. The delimiter is
// detected from the header line (semicolon preferred, comma fallback), so
// both re-imported report exports and hand-made sheets load.
func ReadCSV(path string) ([]models.Invoice, error) {
	const op = "ReadCSV"
	log := logger.WithComponent("loader-csv")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open %s: %w", op, path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	delimiter, err := detectDelimiter(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to inspect %s: %w", op, path, err)
	}

	r := csv.NewReader(reader)
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse %s: %w", op, path, err)
	}

	invoices := invoicesFromTable(rows, log)
	warnRecords(invoices, log)

	log.Info().
		Str("file", path).
		Str("delimiter", string(delimiter)).
		Int("rows", len(rows)).
		Int("invoices", len(invoices)).
		Msg("Invoices loaded from CSV")

	return invoices, nil
}

// detectDelimiter peeks at the header line without consuming the reader. A
// leading UTF-8 BOM is skipped first so re-imported export files parse.
func detectDelimiter(reader *bufio.Reader) (rune, error) {
	if bom, err := reader.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		if _, err := reader.Discard(3); err != nil {
			return 0, err
		}
	}

	peek, err := reader.Peek(4096)
	if err != nil && len(peek) == 0 {
		return 0, err
	}
	header := string(peek)
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	if strings.Count(header, ";") >= strings.Count(header, ",") && strings.Contains(header, ";") {
		return ';', nil
	}
	return ',', nil
}
