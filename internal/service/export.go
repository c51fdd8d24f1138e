package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xolan/daylog/internal/config"
	"github.com/xolan/daylog/internal/export"
)

// ExportService writes and reads journal exports
type ExportService struct {
	journal *JournalService
	config  config.ExportConfig
	now     func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(journal *JournalService, cfg config.ExportConfig, now func() time.Time) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{journal: journal, config: cfg, now: now}
}

// Export renders every entry in format and delivers it to target: a file
// path, a directory, "-" for stdout, or s3://bucket/key. An empty target
// writes the default file name into the configured export directory.
func (s *ExportService) Export(ctx context.Context, format export.Format, target string, stdout io.Writer) (*ExportResult, error) {
	if err := s.journal.Open(ctx); err != nil {
		return nil, err
	}

	dest, err := export.ParseDestination(target, s.config.Dir, export.DefaultFilename(format, s.now()))
	if err != nil {
		return nil, err
	}

	entries := s.journal.Store().Entries()
	data, err := export.Render(format, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}

	if err := export.Deliver(ctx, dest, data, format.ContentType(), stdout, s.s3Options()); err != nil {
		return nil, fmt.Errorf("failed to write export to %s: %w", dest, err)
	}

	return &ExportResult{Destination: dest, Format: format, Count: len(entries), Bytes: len(data)}, nil
}

// Import appends every entry of a JSON export. An invalid file appends
// nothing.
func (s *ExportService) Import(ctx context.Context, r io.Reader) (int, error) {
	if err := s.journal.Open(ctx); err != nil {
		return 0, err
	}
	return export.Import(ctx, r, s.journal.Store())
}

func (s *ExportService) s3Options() export.S3Options {
	c := s.config.S3
	return export.S3Options{
		Region:          c.Region,
		Endpoint:        c.Endpoint,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		UsePathStyle:    c.UsePathStyle,
	}
}
