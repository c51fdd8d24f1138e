package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/xolan/daylog/internal/entry"
)

// MemoryBackend is a Backend held in process memory. It backs tests and
// the offline demo mode.
type MemoryBackend struct {
	mu      sync.Mutex
	nextID  int
	now     func() time.Time
	entries []entry.Entry
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{now: time.Now}
}

func (m *MemoryBackend) Insert(_ context.Context, e entry.Entry) (entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = strconv.Itoa(m.nextID)
	e.CreatedAt = m.now().UTC()
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *MemoryBackend) SelectByOwner(_ context.Context, userID string) ([]entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entry.Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].UserID == userID {
			out = append(out, m.entries[i])
		}
	}
	// Walking backwards puts later inserts first among equal timestamps.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryBackend) DeleteByOwner(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}
