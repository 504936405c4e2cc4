package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"facturex/pkg/models"
)

// pdfEmitter writes a printable invoice report: landscape A4, one table row
// per invoice with the main business fields.
type pdfEmitter struct {
	company string
	now     func() time.Time
}

// pdfColumns is the report table layout (label, width in mm).
var pdfColumns = []struct {
	label string
	width float64
}{
	{"Numéro", 30},
	{"Date", 25},
	{"Client", 75},
	{"Total HT", 30},
	{"TVA", 30},
	{"Total TTC", 30},
	{"Statut", 30},
}

func (e *pdfEmitter) emit(invoices []models.Invoice) ([]byte, error) {
	const op = "emitPDF"

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	title := "Export des factures"
	if e.company != "" {
		title = e.company + " - " + title
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Généré le %s - %d facture(s)",
		e.now().Format("02/01/2006 15:04"), len(invoices))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Header row
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, tr(col.label), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i := range invoices {
		inv := &invoices[i]
		cells := []string{
			inv.FullNumber(),
			displayDate(inv.IssueDate),
			inv.Client.Name,
			NormalizeAmount(inv.FinalTotalHT),
			NormalizeAmount(inv.FinalTotalVAT),
			NormalizeAmount(inv.FinalTotalTTC),
			inv.Status.Label(),
		}
		for j, col := range pdfColumns {
			align := "L"
			if j >= 3 && j <= 5 {
				align = "R"
			}
			pdf.CellFormat(col.width, 7, tr(cells[j]), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: failed to render document: %w", op, err)
	}
	return buf.Bytes(), nil
}
