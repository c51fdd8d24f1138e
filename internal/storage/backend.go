package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xolan/daylog/internal/entry"
)

// JSONLBackend stores entries of every local user in one JSON Lines file.
type JSONLBackend struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu sync.Mutex
}

// NewJSONLBackend returns a backend over the file at path.
func NewJSONLBackend(path string, logger *zap.Logger) *JSONLBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONLBackend{
		path:   path,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Path returns the storage file path.
func (b *JSONLBackend) Path() string {
	return b.path
}

// Insert assigns an id and creation time and appends the record.
func (b *JSONLBackend) Insert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return entry.Entry{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	e.ID = b.newID()
	e.CreatedAt = b.now().UTC()
	if err := AppendRecord(b.path, entry.FromEntry(e)); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// SelectByOwner returns userID's entries, newest first. Corrupted lines
// are skipped and logged.
func (b *JSONLBackend) SelectByOwner(ctx context.Context, userID string) ([]entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	result, err := ReadRecordsWithWarnings(b.path)
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		b.logger.Warn("skipping corrupted line",
			zap.String("path", b.path), zap.Int("line", w.LineNumber), zap.String("error", w.Error))
	}

	var entries []entry.Entry
	for i := len(result.Records) - 1; i >= 0; i-- {
		r := result.Records[i]
		if r.UserID != userID {
			continue
		}
		e, err := r.Entry()
		if err != nil {
			b.logger.Warn("skipping invalid record", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// DeleteByOwner removes userID's records after backing up the file.
func (b *JSONLBackend) DeleteByOwner(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	result, err := ReadRecordsWithWarnings(b.path)
	if err != nil {
		return err
	}
	if err := CreateBackup(b.path); err != nil {
		return err
	}
	if len(result.Warnings) > 0 {
		b.logger.Warn("dropping corrupted lines while clearing entries; originals kept in backup",
			zap.String("path", b.path), zap.Int("count", len(result.Warnings)))
	}

	kept := make([]entry.Record, 0, len(result.Records))
	for _, r := range result.Records {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	b.logger.Info("deleted local entries",
		zap.String("user_id", userID), zap.Int("count", len(result.Records)-len(kept)))
	return WriteRecords(b.path, kept)
}
