package loader

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"number", "prefix", "issueDate", "finalTotalHT", "finalTotalVAT", "finalTotalTTC", "status", "clientName"},
		{"001", "F", "2025-03-15", 100, 20, 120, "COMPLETED", "Acme"},
		{"", "", "2025-03-16", 1, 1, 2, "DRAFT", "Skipped"},
		{"002", "F", "2025-04-01", 200, 40, 240, "PENDING", "Durand"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close workbook: %v", err)
	}

	invoices, err := ReadXLSX(path)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("got %d invoices, want 2 (numberless row skipped)", len(invoices))
	}
	if invoices[0].FullNumber() != "F001" || invoices[1].FullNumber() != "F002" {
		t.Errorf("got %q and %q", invoices[0].FullNumber(), invoices[1].FullNumber())
	}
	if invoices[0].Client.Name != "Acme" {
		t.Errorf("client = %q, want Acme", invoices[0].Client.Name)
	}
}

func TestReadXLSXMissingFile(t *testing.T) {
	if _, err := ReadXLSX(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Error("expected error for missing workbook")
	}
}
