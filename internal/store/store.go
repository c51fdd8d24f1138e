// Package store keeps the current user's entries in memory, newest first,
// and keeps them in step with a persistent Backend.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/shared"
)

// Backend is the persistent entry store.
type Backend interface {
	// Insert persists e and returns the stored record, including the
	// server-assigned id and creation time.
	Insert(ctx context.Context, e entry.Entry) (entry.Entry, error)
	// SelectByOwner returns every entry of userID, newest first.
	SelectByOwner(ctx context.Context, userID string) ([]entry.Entry, error)
	// DeleteByOwner removes every entry of userID.
	DeleteByOwner(ctx context.Context, userID string) error
}

// ConfirmFunc asks the user to approve a destructive operation.
type ConfirmFunc func() bool

// Store is the in-memory entry sequence of one user.
type Store struct {
	backend Backend
	logger  *zap.Logger

	mu      sync.RWMutex
	userID  string
	entries []entry.Entry
}

// New creates an empty Store over backend.
func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Load replaces the in-memory entries with userID's persisted entries.
// On failure the store is left empty and a *shared.StoreError is returned.
func (s *Store) Load(ctx context.Context, userID string) ([]entry.Entry, error) {
	entries, err := s.backend.SelectByOwner(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	if err != nil {
		s.entries = nil
		s.logger.Warn("loading entries failed", zap.String("user_id", userID), zap.Error(err))
		return nil, storeError("load", err)
	}
	s.entries = entries
	s.logger.Debug("entries loaded", zap.String("user_id", userID), zap.Int("count", len(entries)))
	return s.snapshot(), nil
}

// Append validates and persists e for the loaded user, then prepends the
// stored record. A failure leaves the sequence unchanged.
func (s *Store) Append(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	normalized, err := e.Normalize()
	if err != nil {
		return entry.Entry{}, err
	}

	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == "" {
		return entry.Entry{}, shared.ErrNotAuthenticated
	}
	normalized.UserID = userID

	saved, err := s.backend.Insert(ctx, normalized)
	if err != nil {
		s.logger.Warn("appending entry failed", zap.Error(err))
		return entry.Entry{}, storeError("append", err)
	}

	s.mu.Lock()
	s.entries = append([]entry.Entry{saved}, s.entries...)
	s.mu.Unlock()

	s.logger.Debug("entry appended", zap.String("id", saved.ID), zap.String("category", string(saved.Category)))
	return saved, nil
}

// ClearAll deletes every persisted entry of the loaded user after confirm
// approves. A declined confirmation returns shared.ErrNotConfirmed without
// touching the backend; a backend failure leaves the sequence unchanged.
func (s *Store) ClearAll(ctx context.Context, confirm ConfirmFunc) error {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == "" {
		return shared.ErrNotAuthenticated
	}
	if confirm == nil || !confirm() {
		return shared.ErrNotConfirmed
	}

	if err := s.backend.DeleteByOwner(ctx, userID); err != nil {
		s.logger.Warn("clearing entries failed", zap.Error(err))
		return storeError("clear", err)
	}

	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	s.logger.Info("all entries cleared", zap.String("user_id", userID))
	return nil
}

// Entries returns a copy of the in-memory sequence, newest first.
func (s *Store) Entries() []entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Len returns the number of entries held in memory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// UserID returns the owner of the loaded entries.
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Reset forgets the user and the in-memory entries without touching the
// backend.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.entries = nil
}

func (s *Store) snapshot() []entry.Entry {
	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func storeError(op string, err error) error {
	if se, ok := err.(*shared.StoreError); ok {
		return se
	}
	return &shared.StoreError{Op: op, Err: err}
}
