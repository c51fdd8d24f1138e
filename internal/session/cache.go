package session

import (
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"github.com/xolan/daylog/internal/supabase"
)

const sessionKey = "session"

// Cache persists the signed-in session between runs.
type Cache interface {
	Save(s *supabase.Session) error
	// Load returns nil without error when no session is cached.
	Load() (*supabase.Session, error)
	Clear() error
}

// DiskCache stores the session as JSON in a diskv directory.
type DiskCache struct {
	d *diskv.Diskv
}

// NewDiskCache returns a cache rooted at dir.
func NewDiskCache(dir string) *DiskCache {
	return &DiskCache{d: diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 64 * 1024,
		PathPerm:     0700,
		FilePerm:     0600,
	})}
}

func (c *DiskCache) Save(s *supabase.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return c.d.Write(sessionKey, data)
}

func (c *DiskCache) Load() (*supabase.Session, error) {
	if !c.d.Has(sessionKey) {
		return nil, nil
	}
	data, err := c.d.Read(sessionKey)
	if err != nil {
		return nil, err
	}
	var s supabase.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.AccessToken == "" {
		return nil, nil
	}
	return &s, nil
}

func (c *DiskCache) Clear() error {
	if !c.d.Has(sessionKey) {
		return nil
	}
	return c.d.Erase(sessionKey)
}
