package services

import (
	"facturex/pkg/models"
)

// Exporter defines the interface for turning an invoice collection into a
// single export artifact.
type Exporter interface {
	// Export filters the invoices by the optional date range and serializes
	// the surviving set into one complete file payload. It is all-or-nothing:
	// either a payload covering every surviving invoice is returned, or an
	// error and no payload.
	Export(invoices []models.Invoice, rng *models.DateRange) (*ExportFile, error)
}

// ExportFile is a fully serialized export artifact.
type ExportFile struct {
	// Name is the suggested file name, including extension.
	Name string `json:"name"`

	// MIME is the payload content type.
	MIME string `json:"mime"`

	// Invoices is the number of invoices the payload covers, after date
	// filtering.
	Invoices int `json:"invoices"`

	// Data is the exact byte payload, including any required byte order mark.
	Data []byte `json:"-"`
}
