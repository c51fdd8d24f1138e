package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/daylog/internal/config"
	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/filter"
	"github.com/xolan/daylog/internal/form"
	"github.com/xolan/daylog/internal/shared"
	"github.com/xolan/daylog/internal/store"
)

// Identity resolves the owner of the journal.
type Identity interface {
	UserID(ctx context.Context) (string, error)
}

// StaticIdentity is a fixed owner, used by backends without accounts.
type StaticIdentity string

func (s StaticIdentity) UserID(context.Context) (string, error) {
	return string(s), nil
}

// JournalService provides operations on the signed-in user's entries
type JournalService struct {
	store    *store.Store
	identity Identity
	config   config.Config
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	loaded string
}

// NewJournalService creates a new JournalService
func NewJournalService(st *store.Store, id Identity, cfg config.Config, logger *zap.Logger, now func() time.Time) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &JournalService{store: st, identity: id, config: cfg, logger: logger, now: now}
}

// Store returns the underlying entry store.
func (s *JournalService) Store() *store.Store {
	return s.store
}

// Open loads the owner's entries unless they are already loaded.
func (s *JournalService) Open(ctx context.Context) error {
	userID, err := s.owner(ctx)
	if err != nil {
		return err
	}

	// The lock is not held across Load: a rejected token refresh signs the
	// user out from inside the backend call, which lands in Forget.
	s.mu.Lock()
	loaded := s.loaded == userID
	s.mu.Unlock()
	if loaded {
		return nil
	}

	if _, err := s.store.Load(ctx, userID); err != nil {
		return err
	}
	s.mu.Lock()
	s.loaded = userID
	s.mu.Unlock()
	return nil
}

// Reload reads the owner's entries again from the backend.
func (s *JournalService) Reload(ctx context.Context) error {
	s.Forget()
	return s.Open(ctx)
}

// Forget drops the in-memory entries, for example after sign out.
func (s *JournalService) Forget() {
	s.mu.Lock()
	s.loaded = ""
	s.mu.Unlock()
	s.store.Reset()
}

// List returns the entries matching f, newest first. A nil filter matches
// everything.
func (s *JournalService) List(ctx context.Context, f *filter.Filter) (*ListResult, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	all := s.store.Entries()
	return &ListResult{
		Entries: filter.Apply(all, f),
		Filter:  f,
		Total:   len(all),
	}, nil
}

// Search returns the entries containing text and matching the other
// criteria of f.
func (s *JournalService) Search(ctx context.Context, text string, f *filter.Filter) (*SearchResult, error) {
	criteria := filter.NewFilter(text, "", "", "")
	if f != nil {
		criteria.Category, criteria.Date, criteria.Time = f.Category, f.Date, f.Time
	}

	result, err := s.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Entries: result.Entries,
		Query:   text,
		Total:   len(result.Entries),
	}, nil
}

// NewForm returns an empty entry form that submits to the store.
func (s *JournalService) NewForm() *form.Controller {
	return form.New(s.store, form.WithClock(s.now), form.WithLogger(s.logger))
}

// Add builds an entry from req and submits it.
func (s *JournalService) Add(ctx context.Context, req AddRequest) (entry.Entry, error) {
	if err := s.Open(ctx); err != nil {
		return entry.Entry{}, err
	}

	f := s.NewForm()
	if req.Preset != "" {
		p, ok := s.config.Preset(req.Preset)
		if !ok {
			return entry.Entry{}, shared.NewValidationError("preset", "unknown preset %q (available: %s)",
				req.Preset, presetList(s.config.PresetNames()))
		}
		if err := f.ApplyPreset(p); err != nil {
			return entry.Entry{}, fmt.Errorf("preset %q: %w", req.Preset, err)
		}
	}
	if req.Category != "" {
		cat, err := entry.ParseCategory(req.Category)
		if err != nil {
			return entry.Entry{}, err
		}
		if cat != f.Category() {
			f.SelectCategory(cat)
		}
	}

	fields := make([]string, 0, len(req.Values))
	for field := range req.Values {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)
	for _, name := range fields {
		if err := f.Set(form.Field(name), req.Values[form.Field(name)]); err != nil {
			return entry.Entry{}, err
		}
	}

	return f.Submit(ctx)
}

// Clear deletes every entry of the owner once confirm approves.
func (s *JournalService) Clear(ctx context.Context, confirm store.ConfirmFunc) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	return s.store.ClearAll(ctx, confirm)
}

func (s *JournalService) owner(ctx context.Context) (string, error) {
	userID, err := s.identity.UserID(ctx)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", shared.ErrNotAuthenticated
	}
	return userID, nil
}

func presetList(names []string) string {
	if len(names) == 0 {
		return "none configured"
	}
	return strings.Join(names, ", ")
}
