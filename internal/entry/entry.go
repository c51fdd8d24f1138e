// Package entry defines the journal entry model.
//
// An Entry carries the fields every category shares. Category-specific
// attributes live in Details, a closed sum type with one implementation per
// detailed category, so an entry can never hold fields of a category other
// than its own.
package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/daylog/internal/shared"
	"github.com/xolan/daylog/internal/timeutil"
)

// Category is the kind of a journal entry.
type Category string

const (
	CategoryJournal  Category = "journal"
	CategoryWellness Category = "wellness"
	CategoryFood     Category = "food"
	CategoryExercise Category = "exercise"
	CategorySocial   Category = "social"
	CategoryLearning Category = "learning"
	CategoryCreative Category = "creative"
	CategoryCareer   Category = "career"
	CategoryEvents   Category = "events"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryJournal,
	CategoryWellness,
	CategoryFood,
	CategoryExercise,
	CategorySocial,
	CategoryLearning,
	CategoryCreative,
	CategoryCareer,
	CategoryEvents,
}

var categoryLabels = map[Category]string{
	CategoryJournal:  "📝 Journal",
	CategoryWellness: "😊 Wellness",
	CategoryFood:     "🍽️ Food",
	CategoryExercise: "💪 Exercise",
	CategorySocial:   "👥 Social",
	CategoryLearning: "📚 Learning",
	CategoryCreative: "🎨 Creative",
	CategoryCareer:   "💼 Career",
	CategoryEvents:   "📅 Events",
}

// Label returns the category with its display icon.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// HasDetails reports whether entries of this category carry a Details value.
func (c Category) HasDetails() bool {
	switch c {
	case CategoryWellness, CategoryExercise, CategorySocial,
		CategoryLearning, CategoryCreative, CategoryCareer:
		return true
	}
	return false
}

// ParseCategory parses a category name case-insensitively. "event" is
// accepted as an alias of "events".
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "event" {
		c = CategoryEvents
	}
	if !c.Valid() {
		return "", shared.NewValidationError("category", "unknown category %q", s)
	}
	return c, nil
}

// Entry is a single journal record.
type Entry struct {
	ID        string
	UserID    string
	Category  Category
	Title     string
	Content   string
	Date      string // YYYY-MM-DD
	Time      string // HH:MM, optional
	Tags      []string
	CreatedAt time.Time

	// Details is nil for journal, food and events entries.
	Details Details
}

// Normalize validates e and returns a copy with trimmed text, canonical
// enumeration labels and canonical date and time formats.
func (e Entry) Normalize() (Entry, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return Entry{}, shared.NewValidationError("title", "is required")
	}
	if e.Category == "" {
		return Entry{}, shared.NewValidationError("category", "is required")
	}
	if !e.Category.Valid() {
		return Entry{}, shared.NewValidationError("category", "unknown category %q", string(e.Category))
	}

	date, err := timeutil.NormalizeDate(e.Date)
	if err != nil {
		return Entry{}, shared.NewValidationError("date", "%v", err)
	}
	e.Date = date

	if strings.TrimSpace(e.Time) != "" {
		clock, err := timeutil.NormalizeClock(e.Time)
		if err != nil {
			return Entry{}, shared.NewValidationError("time", "%v", err)
		}
		e.Time = clock
	} else {
		e.Time = ""
	}

	if len(e.Tags) > 0 {
		tags := make([]string, 0, len(e.Tags))
		for _, t := range e.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		e.Tags = tags
	}

	if e.Details == nil {
		if e.Category == CategoryExercise {
			return Entry{}, shared.NewValidationError("exercise_type", "is required for exercise entries")
		}
		return e, nil
	}
	if !e.Category.HasDetails() || e.Details.Category() != e.Category {
		return Entry{}, shared.NewValidationError("category",
			"%s details cannot be attached to a %s entry", e.Details.Category(), e.Category)
	}
	details, err := e.Details.normalize()
	if err != nil {
		return Entry{}, err
	}
	e.Details = details
	return e, nil
}

// Descriptors returns the populated descriptive detail fields used by text
// search. Numeric fields are not included.
func (e Entry) Descriptors() []string {
	if e.Details == nil {
		return nil
	}
	return e.Details.Descriptors()
}

// String renders a short single-line form of the entry.
func (e Entry) String() string {
	when := e.Date
	if e.Time != "" {
		when += " " + e.Time
	}
	return fmt.Sprintf("[%s] %s %s", e.Category, when, e.Title)
}
