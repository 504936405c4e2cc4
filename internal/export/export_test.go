package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"facturex/pkg/models"
)

func TestExportEmptySetIsHardError(t *testing.T) {
	invoices := []models.Invoice{invoiceIssued("1", "2025-06-01")}
	rng := &models.DateRange{From: day(2030, 1, 1), To: day(2030, 1, 31)}

	for _, format := range []Format{FormatCSV, FormatExcel, FormatFEC, FormatSage, FormatCegid, FormatPDF} {
		svc, err := NewService(format, Options{})
		if err != nil {
			t.Fatalf("%s: new service: %v", format, err)
		}
		file, err := svc.Export(invoices, rng)
		if err == nil {
			t.Fatalf("%s: expected error for empty filtered set, got file %q", format, file.Name)
		}
		if !errors.Is(err, ErrNoInvoices) {
			t.Errorf("%s: error does not wrap ErrNoInvoices: %v", format, err)
		}
		msg := err.Error()
		if !strings.Contains(msg, "01/01/2030") || !strings.Contains(msg, "31/01/2030") {
			t.Errorf("%s: message must contain the range boundaries: %q", format, msg)
		}
		if !strings.Contains(msg, "1 facture") {
			t.Errorf("%s: message must contain the pre-filter count: %q", format, msg)
		}
	}
}

func TestExportCSVScenario(t *testing.T) {
	inv := models.Invoice{
		Number:        "001",
		Prefix:        "F",
		IssueDate:     1700000000, // Unix seconds
		FinalTotalHT:  100.0,
		FinalTotalVAT: 20.0,
		FinalTotalTTC: 120.0,
		Status:        models.StatusCompleted,
		Client:        models.Client{Name: "Acme"},
	}

	svc, err := NewService(FormatCSV, Options{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	file, err := svc.Export([]models.Invoice{inv}, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	content := string(bytes.TrimPrefix(file.Data, []byte{0xEF, 0xBB, 0xBF}))
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 record", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Numéro;") {
		t.Errorf("header = %q", lines[0])
	}
	record := strings.Split(lines[1], ";")
	header := strings.Split(lines[0], ";")
	byCol := map[string]string{}
	for i, col := range header {
		if i < len(record) {
			byCol[col] = record[i]
		}
	}
	if byCol["Numéro"] != "F001" {
		t.Errorf("Numéro = %q, want F001", byCol["Numéro"])
	}
	if byCol["Total HT (€)"] != "100.00" {
		t.Errorf("Total HT = %q, want 100.00", byCol["Total HT (€)"])
	}
	if byCol["Statut"] != "Payée" {
		t.Errorf("Statut = %q, want Payée", byCol["Statut"])
	}
	if file.MIME != "text/csv;charset=utf-8" {
		t.Errorf("MIME = %q", file.MIME)
	}
}

func TestExportReportsFilteredInvoiceCount(t *testing.T) {
	invoices := []models.Invoice{
		{Number: "1", IssueDate: "2025-01-10"},
		{Number: "2", IssueDate: "2025-01-20"},
		{Number: "3", IssueDate: "2024-12-01"},
	}
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local)

	svc, err := NewService(FormatCSV, Options{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	file, err := svc.Export(invoices, &models.DateRange{From: &from, To: &to})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if file.Invoices != 2 {
		t.Errorf("file.Invoices = %d, want 2 (count after date filtering)", file.Invoices)
	}
}

func TestExportCSVQuoting(t *testing.T) {
	inv := models.Invoice{
		Number: "001",
		Status: models.StatusDraft,
		Client: models.Client{Name: `Acme;fils "et" cie`},
	}

	svc, _ := NewService(FormatCSV, Options{})
	file, err := svc.Export([]models.Invoice{inv}, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(file.Data), `"Acme;fils ""et"" cie"`) {
		t.Errorf("field with delimiter and quotes not escaped: %s", file.Data)
	}
}

func TestExportBOMPerFormat(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatCSV, true},
		{FormatFEC, true},
		{FormatSage, true},
		{FormatCegid, true},
		{FormatExcel, false},
		{FormatPDF, false},
	}

	for _, tt := range tests {
		svc, err := NewService(tt.format, Options{})
		if err != nil {
			t.Fatalf("%s: new service: %v", tt.format, err)
		}
		file, err := svc.Export([]models.Invoice{ledgerTestInvoice()}, nil)
		if err != nil {
			t.Fatalf("%s: export: %v", tt.format, err)
		}
		if got := bytes.HasPrefix(file.Data, bom); got != tt.want {
			t.Errorf("%s: BOM prefix = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestExportFileNames(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	opts := Options{Now: func() time.Time { return fixed }}

	rng := &models.DateRange{From: day(2025, 1, 1), To: day(2025, 12, 31)}
	tests := []struct {
		format Format
		rng    *models.DateRange
		want   string
	}{
		{FormatFEC, rng, "FEC_2025-01-01_au_2025-12-31.txt"},
		{FormatSage, rng, "Sage_2025-01-01_au_2025-12-31.csv"},
		{FormatCegid, rng, "Cegid_2025-01-01_au_2025-12-31.csv"},
		{FormatCSV, rng, "factures_2025-01-01_au_2025-12-31.csv"},
		{FormatCSV, nil, "factures_export_1748779200000.csv"},
		{FormatExcel, nil, "factures_export_1748779200000.xls"},
	}

	for _, tt := range tests {
		svc, err := NewService(tt.format, opts)
		if err != nil {
			t.Fatalf("%s: new service: %v", tt.format, err)
		}
		if got := svc.fileName(tt.rng); got != tt.want {
			t.Errorf("%s: fileName = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestExportExcelPayload(t *testing.T) {
	svc, _ := NewService(FormatExcel, Options{})
	inv := ledgerTestInvoice()
	inv.Client.Name = "Acme <& fils>"

	file, err := svc.Export([]models.Invoice{inv}, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	content := string(file.Data)
	if !strings.Contains(content, `xmlns:x="urn:schemas-microsoft-com:office:excel"`) {
		t.Error("missing Office namespace hint")
	}
	if !strings.Contains(content, "<x:Name>Factures</x:Name>") {
		t.Error("missing worksheet-name directive")
	}
	if !strings.Contains(content, "Acme &lt;&amp; fils&gt;") {
		t.Error("client name not HTML-escaped")
	}
	if file.MIME != "application/vnd.ms-excel" {
		t.Errorf("MIME = %q", file.MIME)
	}
}

func TestExportPDFPayload(t *testing.T) {
	svc, err := NewService(FormatPDF, Options{CompanyName: "Acme SARL"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	file, err := svc.Export([]models.Invoice{ledgerTestInvoice()}, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(file.Data, []byte("%PDF")) {
		t.Errorf("payload does not start with PDF magic: %q", file.Data[:8])
	}
	if file.MIME != "application/pdf" {
		t.Errorf("MIME = %q", file.MIME)
	}
}

func TestExportPreservesInvoiceOrder(t *testing.T) {
	first := ledgerTestInvoice()
	second := ledgerTestInvoice()
	second.Number = "002"
	second.IssueDate = "2024-01-01" // earlier than first; must still come second

	lines := fecLines(t, []models.Invoice{first, second})
	if lines[0][8] != "F001" || lines[3][8] != "F002" {
		t.Errorf("invoice order changed: %q then %q", lines[0][8], lines[3][8])
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range FormatNames() {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseFormat("dbase"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(dbase) = %v, want ErrUnknownFormat", err)
	}
}
