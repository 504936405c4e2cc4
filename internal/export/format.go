package export

import (
	"fmt"
	"strings"

	"facturex/pkg/models"
)

// Format is the closed set of supported export formats. Adding a format
// means adding an enum value, a formatInfo entry and an emitter, all checked
// at compile time through NewService.
type Format int

const (
	FormatCSV Format = iota
	FormatExcel
	FormatFEC
	FormatSage
	FormatCegid
	FormatPDF
)

// formatInfo holds the per-format serialization metadata.
type formatInfo struct {
	name       string
	ext        string
	filePrefix string
	mime       string
	bom        bool // prepend a UTF-8 byte order mark to the payload
}

var formatInfos = map[Format]formatInfo{
	FormatCSV:   {name: "csv", ext: "csv", filePrefix: "factures", mime: "text/csv;charset=utf-8", bom: true},
	FormatExcel: {name: "excel", ext: "xls", filePrefix: "factures", mime: "application/vnd.ms-excel", bom: false},
	FormatFEC:   {name: "fec", ext: "txt", filePrefix: "FEC", mime: "text/plain;charset=utf-8", bom: true},
	FormatSage:  {name: "sage", ext: "csv", filePrefix: "Sage", mime: "text/csv;charset=utf-8", bom: true},
	FormatCegid: {name: "cegid", ext: "csv", filePrefix: "Cegid", mime: "text/csv;charset=utf-8", bom: true},
	FormatPDF:   {name: "pdf", ext: "pdf", filePrefix: "factures", mime: "application/pdf", bom: false},
}

// String returns the canonical lowercase format name.
func (f Format) String() string {
	if info, ok := formatInfos[f]; ok {
		return info.name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "excel", "xls":
		return FormatExcel, nil
	case "fec":
		return FormatFEC, nil
	case "sage":
		return FormatSage, nil
	case "cegid":
		return FormatCegid, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected csv, excel, fec, sage, cegid or pdf)", ErrUnknownFormat, s)
	}
}

// FormatNames lists the accepted format names for help output.
func FormatNames() []string {
	return []string{"csv", "excel", "fec", "sage", "cegid", "pdf"}
}

// emitter serializes an already-filtered, non-empty invoice set into the
// exact byte payload of one format (before any BOM is applied).
type emitter interface {
	emit(invoices []models.Invoice) ([]byte, error)
}
