// Package form implements the entry form: it tracks the selected category,
// keeps only that category's field group populated, validates raw input and
// submits the assembled entry.
package form

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/shared"
	"github.com/xolan/daylog/internal/timeutil"
)

// Field names a form input. Values match the persisted column names.
type Field string

const (
	FieldTitle   Field = "title"
	FieldContent Field = "content"
	FieldDate    Field = "date"
	FieldTime    Field = "time"
	FieldTags    Field = "tags"

	FieldMood         Field = "mood"
	FieldEnergy       Field = "energy"
	FieldSleepHours   Field = "sleep_hours"
	FieldSleepQuality Field = "sleep_quality"

	FieldExerciseType Field = "exercise_type"
	FieldDuration     Field = "duration"
	FieldIntensity    Field = "intensity"

	FieldSocialType   Field = "social_type"
	FieldSocialEnergy Field = "social_energy"

	FieldSkillName      Field = "skill_name"
	FieldLearningTime   Field = "learning_time"
	FieldSkillStatus    Field = "skill_status"
	FieldLearningMethod Field = "learning_method"

	FieldCreativeType   Field = "creative_type"
	FieldCreativeEnergy Field = "creative_energy"

	FieldCareerActivity Field = "career_activity"
	FieldCareerFeeling  Field = "career_feeling"
	FieldCareerHours    Field = "career_hours"
)

// CommonFields are shown for every category.
var CommonFields = []Field{FieldTitle, FieldContent, FieldDate, FieldTime, FieldTags}

// Groups maps each detailed category to its field group.
var Groups = map[entry.Category][]Field{
	entry.CategoryWellness: {FieldMood, FieldEnergy, FieldSleepHours, FieldSleepQuality},
	entry.CategoryExercise: {FieldExerciseType, FieldDuration, FieldIntensity},
	entry.CategorySocial:   {FieldSocialType, FieldSocialEnergy},
	entry.CategoryLearning: {FieldSkillName, FieldLearningTime, FieldSkillStatus, FieldLearningMethod},
	entry.CategoryCreative: {FieldCreativeType, FieldCreativeEnergy},
	entry.CategoryCareer:   {FieldCareerActivity, FieldCareerFeeling, FieldCareerHours},
}

// Submitter persists a validated entry and returns the stored record.
type Submitter interface {
	Append(ctx context.Context, e entry.Entry) (entry.Entry, error)
}

// Preset is a named set of prefilled values, the CLI counterpart of the
// quick-add buttons.
type Preset struct {
	Category string
	Title    string
	Values   map[string]string
}

// Controller holds the state of one entry form.
type Controller struct {
	store    Submitter
	logger   *zap.Logger
	now      func() time.Time
	category entry.Category
	values   map[Field]string
	inFlight atomic.Bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the clock used for default date and time.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New returns a reset Controller that submits to store.
func New(store Submitter, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// Reset clears every value and category, then prefills date and time with now.
func (c *Controller) Reset() {
	now := c.now()
	c.category = ""
	c.values = map[Field]string{
		FieldDate: timeutil.DateString(now),
		FieldTime: timeutil.ClockString(now),
	}
}

// Category returns the selected category, "" when none.
func (c *Controller) Category() entry.Category {
	return c.category
}

// SelectCategory switches the active field group and clears the values of
// every other group.
func (c *Controller) SelectCategory(cat entry.Category) {
	c.category = cat
	for groupCat, fields := range Groups {
		if groupCat == cat {
			continue
		}
		for _, f := range fields {
			delete(c.values, f)
		}
	}
}

// Fields returns the visible fields: the common ones then the active group.
func (c *Controller) Fields() []Field {
	fields := append([]Field(nil), CommonFields...)
	return append(fields, Groups[c.category]...)
}

// Required reports whether f must be filled for the current category.
func (c *Controller) Required(f Field) bool {
	switch f {
	case FieldTitle, FieldDate:
		return true
	case FieldExerciseType:
		return c.category == entry.CategoryExercise
	}
	return false
}

// Set stores a raw value. Fields of inactive groups are rejected.
func (c *Controller) Set(f Field, value string) error {
	if !c.visible(f) {
		return shared.NewValidationError(string(f), "not available for category %q", string(c.category))
	}
	c.values[f] = value
	return nil
}

// Value returns the raw value of f.
func (c *Controller) Value(f Field) string {
	return c.values[f]
}

// ApplyPreset selects the preset's category and fills its values.
func (c *Controller) ApplyPreset(p Preset) error {
	cat, err := entry.ParseCategory(p.Category)
	if err != nil {
		return err
	}
	c.SelectCategory(cat)
	if p.Title != "" {
		c.values[FieldTitle] = p.Title
	}
	for name, v := range p.Values {
		if err := c.Set(Field(name), v); err != nil {
			return err
		}
	}
	return nil
}

// Build validates the raw values and assembles an entry without submitting it.
func (c *Controller) Build() (entry.Entry, error) {
	if c.category == "" {
		return entry.Entry{}, shared.NewValidationError("category", "is required")
	}

	date := strings.TrimSpace(c.values[FieldDate])
	if date == "" {
		date = timeutil.DateString(c.now())
	}

	e := entry.Entry{
		Category: c.category,
		Title:    c.values[FieldTitle],
		Content:  strings.TrimSpace(c.values[FieldContent]),
		Date:     date,
		Time:     c.values[FieldTime],
		Tags:     entry.ParseTags(c.values[FieldTags]),
	}

	details, err := c.details()
	if err != nil {
		return entry.Entry{}, err
	}
	e.Details = details

	return e.Normalize()
}

// Submit validates and submits the form. Validation failures never reach
// the store. While a submission is running further calls fail with
// shared.ErrSubmitInFlight. On success the form is reset.
func (c *Controller) Submit(ctx context.Context) (entry.Entry, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return entry.Entry{}, shared.ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	e, err := c.Build()
	if err != nil {
		c.logger.Debug("entry rejected", zap.Error(err))
		return entry.Entry{}, err
	}

	saved, err := c.store.Append(ctx, e)
	if err != nil {
		return entry.Entry{}, err
	}
	c.Reset()
	return saved, nil
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	return c.inFlight.Load()
}

func (c *Controller) visible(f Field) bool {
	for _, cf := range CommonFields {
		if cf == f {
			return true
		}
	}
	for _, gf := range Groups[c.category] {
		if gf == f {
			return true
		}
	}
	return false
}

func (c *Controller) details() (entry.Details, error) {
	v := c.values
	switch c.category {
	case entry.CategoryWellness:
		hours, err := floatField(FieldSleepHours, v[FieldSleepHours])
		if err != nil {
			return nil, err
		}
		d := entry.Wellness{Mood: v[FieldMood], Energy: v[FieldEnergy], SleepHours: hours, SleepQuality: v[FieldSleepQuality]}
		if d == (entry.Wellness{}) {
			return nil, nil
		}
		return d, nil
	case entry.CategoryExercise:
		minutes, err := intField(FieldDuration, v[FieldDuration])
		if err != nil {
			return nil, err
		}
		return entry.Exercise{Kind: v[FieldExerciseType], DurationMinutes: minutes, Intensity: v[FieldIntensity]}, nil
	case entry.CategorySocial:
		d := entry.Social{Type: v[FieldSocialType], Energy: v[FieldSocialEnergy]}
		if d == (entry.Social{}) {
			return nil, nil
		}
		return d, nil
	case entry.CategoryLearning:
		minutes, err := intField(FieldLearningTime, v[FieldLearningTime])
		if err != nil {
			return nil, err
		}
		d := entry.Learning{Skill: v[FieldSkillName], Minutes: minutes, Status: v[FieldSkillStatus], Method: v[FieldLearningMethod]}
		if d == (entry.Learning{}) {
			return nil, nil
		}
		return d, nil
	case entry.CategoryCreative:
		d := entry.Creative{Type: v[FieldCreativeType], Energy: v[FieldCreativeEnergy]}
		if d == (entry.Creative{}) {
			return nil, nil
		}
		return d, nil
	case entry.CategoryCareer:
		hours, err := floatField(FieldCareerHours, v[FieldCareerHours])
		if err != nil {
			return nil, err
		}
		d := entry.Career{Activity: v[FieldCareerActivity], Feeling: v[FieldCareerFeeling], Hours: hours}
		if d == (entry.Career{}) {
			return nil, nil
		}
		return d, nil
	}
	return nil, nil
}

func floatField(f Field, raw string) (*float64, error) {
	n, err := entry.ParseNumber(raw)
	if err != nil {
		return nil, shared.NewValidationError(string(f), "must be a number")
	}
	return n.FloatPtr(), nil
}

func intField(f Field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, shared.NewValidationError(string(f), "must be a whole number of minutes")
	}
	return &n, nil
}
