package filter

import (
	"strings"

	"github.com/xolan/daylog/internal/entry"
)

// CategoryAll matches entries of every category.
const CategoryAll = "all"

// Filter represents search and filtering criteria for journal entries.
// All filter fields are optional - empty values match all entries.
type Filter struct {
	Text     string // Case-insensitive substring search
	Category string // Exact category, or "all"
	Date     string // Exact YYYY-MM-DD date
	Time     string // Exact HH:MM time
}

// NewFilter creates a new Filter with the given criteria.
// An empty category is treated as "all".
func NewFilter(text, category, date, clock string) *Filter {
	if category == "" {
		category = CategoryAll
	}
	return &Filter{
		Text:     text,
		Category: category,
		Date:     date,
		Time:     clock,
	}
}

// IsEmpty returns true if all filter fields are empty (matches all entries)
func (f *Filter) IsEmpty() bool {
	return f.Text == "" && f.matchesAnyCategory() && f.Date == "" && f.Time == ""
}

// Apply returns a new slice containing the entries that match every
// criterion, in their original order. The input is never modified.
// A nil filter matches everything.
func Apply(entries []entry.Entry, f *Filter) []entry.Entry {
	filtered := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if f == nil || f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Matches returns true when the entry satisfies all four criteria.
func (f *Filter) Matches(e entry.Entry) bool {
	return f.MatchesText(e) && f.MatchesCategory(e) && f.MatchesDate(e) && f.MatchesTime(e)
}

// MatchesText returns true if the text is found in the title, the content,
// any tag or any populated descriptive detail (case-insensitive).
// An empty text matches all entries.
func (f *Filter) MatchesText(e entry.Entry) bool {
	if f.Text == "" {
		return true
	}
	needle := strings.ToLower(f.Text)
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}

	if contains(e.Title) || contains(e.Content) {
		return true
	}
	for _, tag := range e.Tags {
		if contains(tag) {
			return true
		}
	}
	for _, d := range e.Descriptors() {
		if contains(d) {
			return true
		}
	}
	return false
}

// MatchesCategory returns true if the entry's category equals the filter
// category. "all" and an empty category match all entries.
func (f *Filter) MatchesCategory(e entry.Entry) bool {
	if f.matchesAnyCategory() {
		return true
	}
	return string(e.Category) == f.Category
}

// MatchesDate returns true if the entry date equals the filter date exactly.
// An empty date matches all entries.
func (f *Filter) MatchesDate(e entry.Entry) bool {
	return f.Date == "" || e.Date == f.Date
}

// MatchesTime returns true if the entry time equals the filter time exactly.
// An empty time matches all entries.
func (f *Filter) MatchesTime(e entry.Entry) bool {
	return f.Time == "" || e.Time == f.Time
}

func (f *Filter) matchesAnyCategory() bool {
	return f.Category == "" || f.Category == CategoryAll
}
