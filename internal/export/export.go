package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"facturex/internal/logger"
	"facturex/pkg/models"
	"facturex/pkg/services"
)

// Options configures an export service.
type Options struct {
	// JournalCode is the sales journal code used by the ledger formats and
	// as the entry-number prefix. Defaults to VTE.
	JournalCode string

	// CompanyName is shown in the PDF report title.
	CompanyName string

	// Now overrides the clock, used for timestamped file names. Defaults to
	// time.Now.
	Now func() time.Time
}

// Service turns invoice collections into export files for one fixed format.
// It implements services.Exporter. The pipeline is synchronous and pure
// until the optional Save side effect: filter → empty guard → emit → BOM →
// name.
type Service struct {
	format Format
	info   formatInfo
	em     emitter
	now    func() time.Time
	log    zerolog.Logger
}

// NewService creates the export service for the given format.
func NewService(format Format, opts Options) (*Service, error) {
	const op = "NewService"

	journal := opts.JournalCode
	if journal == "" {
		journal = "VTE"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	info, ok := formatInfos[format]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %d", op, ErrUnknownFormat, int(format))
	}

	var em emitter
	switch format {
	case FormatCSV:
		em = &csvEmitter{}
	case FormatExcel:
		em = &excelEmitter{}
	case FormatFEC:
		em = &fecEmitter{journal: journal}
	case FormatSage:
		em = &sageEmitter{journal: journal}
	case FormatCegid:
		em = &cegidEmitter{journal: journal}
	case FormatPDF:
		em = &pdfEmitter{company: opts.CompanyName, now: now}
	default:
		return nil, fmt.Errorf("%s: %w: %d", op, ErrUnknownFormat, int(format))
	}

	return &Service{
		format: format,
		info:   info,
		em:     em,
		now:    now,
		log:    logger.WithComponent("export-" + info.name),
	}, nil
}

// Format returns the service's fixed target format.
func (s *Service) Format() Format {
	return s.format
}

// Export filters, serializes and names one export file. All-or-nothing: an
// empty filtered set returns an EmptyRangeError and no payload is produced.
func (s *Service) Export(invoices []models.Invoice, rng *models.DateRange) (*services.ExportFile, error) {
	const op = "Export"

	filtered := FilterByRange(invoices, rng)
	if dropped := len(invoices) - len(filtered); dropped > 0 {
		s.log.Debug().
			Int("dropped", dropped).
			Str("range", rng.Describe()).
			Msg("Invoices excluded by date filter")
	}
	if len(filtered) == 0 {
		return nil, &EmptyRangeError{Range: rng, Total: len(invoices)}
	}

	data, err := s.em.emit(filtered)
	if err != nil {
		return nil, &ExportError{Op: op, Format: s.format, Err: err}
	}
	if s.info.bom {
		data, err = withBOM(data)
		if err != nil {
			return nil, &ExportError{Op: op, Format: s.format, Err: err}
		}
	}

	file := &services.ExportFile{
		Name:     s.fileName(rng),
		MIME:     s.info.mime,
		Invoices: len(filtered),
		Data:     data,
	}

	s.log.Info().
		Str("file", file.Name).
		Int("invoices", len(filtered)).
		Int("bytes", len(file.Data)).
		Msg("Export file generated")

	return file, nil
}

// Save writes the export file into dir and returns the full path. The file
// handle is scoped to this call; nothing stays open afterwards.
func (s *Service) Save(dir string, file *services.ExportFile) (string, error) {
	const op = "Save"

	path := filepath.Join(dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0644); err != nil {
		return "", &ExportError{Op: op, Format: s.format, Err: err}
	}

	s.log.Info().Str("path", path).Msg("Export file written")
	return path, nil
}

// fileName derives the export file name: prefix_from_au_to.ext for a fully
// bounded range, prefix_export_timestamp.ext otherwise.
func (s *Service) fileName(rng *models.DateRange) string {
	const isoDay = "2006-01-02"
	if rng != nil && rng.From != nil && rng.To != nil {
		return fmt.Sprintf("%s_%s_au_%s.%s",
			s.info.filePrefix, rng.From.Format(isoDay), rng.To.Format(isoDay), s.info.ext)
	}
	return fmt.Sprintf("%s_export_%s.%s",
		s.info.filePrefix, strconv.FormatInt(s.now().UnixMilli(), 10), s.info.ext)
}

// withBOM prepends the UTF-8 byte order mark required by spreadsheet and
// accounting-software imports.
func withBOM(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewEncoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to apply byte order mark: %w", err)
	}
	return out, nil
}
