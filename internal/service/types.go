// Package service provides the business logic layer for daylog.
// It wires the configured backend into the entry store and exposes journal,
// dashboard, export and account operations to both the CLI and TUI
// frontends.
package service

import (
	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/export"
	"github.com/xolan/daylog/internal/filter"
	"github.com/xolan/daylog/internal/form"
)

// ListResult contains the results of listing entries
type ListResult struct {
	Entries []entry.Entry
	Filter  *filter.Filter
	Total   int // Number of entries before filtering
}

// Filtered reports whether a non-empty filter was applied.
func (r *ListResult) Filtered() bool {
	return r.Filter != nil && !r.Filter.IsEmpty()
}

// SearchResult contains search results
type SearchResult struct {
	Entries []entry.Entry
	Query   string // The search text used
	Total   int    // Total matching entries
}

// AddRequest describes an entry to create. Values holds raw form input;
// fields left out keep the form defaults.
type AddRequest struct {
	Preset   string
	Category string
	Values   map[form.Field]string
}

// ExportResult describes a finished export.
type ExportResult struct {
	Destination export.Destination
	Format      export.Format
	Count       int
	Bytes       int
}

// Account describes who the journal belongs to.
type Account struct {
	Backend   string
	UserID    string
	Email     string
	Confirmed bool
}
