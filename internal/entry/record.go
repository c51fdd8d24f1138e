package entry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the flat row shape shared by every backend and by JSON
// export and import. Columns of other categories are left empty.
type Record struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`

	Mood         string `json:"mood,omitempty"`
	Energy       string `json:"energy,omitempty"`
	SleepHours   Number `json:"sleep_hours,omitzero"`
	SleepQuality string `json:"sleep_quality,omitempty"`

	ExerciseType string `json:"exercise_type,omitempty"`
	Duration     Number `json:"duration,omitzero"`
	Intensity    string `json:"intensity,omitempty"`

	SocialType   string `json:"social_type,omitempty"`
	SocialEnergy string `json:"social_energy,omitempty"`

	SkillName      string `json:"skill_name,omitempty"`
	LearningTime   Number `json:"learning_time,omitzero"`
	SkillStatus    string `json:"skill_status,omitempty"`
	LearningMethod string `json:"learning_method,omitempty"`

	CreativeType   string `json:"creative_type,omitempty"`
	CreativeEnergy string `json:"creative_energy,omitempty"`

	CareerActivity string `json:"career_activity,omitempty"`
	CareerFeeling  string `json:"career_feeling,omitempty"`
	CareerHours    Number `json:"career_hours,omitzero"`
}

// FromEntry flattens e into a Record.
func FromEntry(e Entry) Record {
	r := Record{
		ID:        e.ID,
		UserID:    e.UserID,
		Type:      string(e.Category),
		Title:     e.Title,
		Content:   e.Content,
		Date:      e.Date,
		Time:      e.Time,
		Tags:      e.Tags,
		CreatedAt: e.CreatedAt,
	}

	switch d := e.Details.(type) {
	case Wellness:
		r.Mood = d.Mood
		r.Energy = d.Energy
		r.SleepHours = floatNumber(d.SleepHours)
		r.SleepQuality = d.SleepQuality
	case Exercise:
		r.ExerciseType = d.Kind
		r.Duration = intNumber(d.DurationMinutes)
		r.Intensity = d.Intensity
	case Social:
		r.SocialType = d.Type
		r.SocialEnergy = d.Energy
	case Learning:
		r.SkillName = d.Skill
		r.LearningTime = intNumber(d.Minutes)
		r.SkillStatus = d.Status
		r.LearningMethod = d.Method
	case Creative:
		r.CreativeType = d.Type
		r.CreativeEnergy = d.Energy
	case Career:
		r.CareerActivity = d.Activity
		r.CareerFeeling = d.Feeling
		r.CareerHours = floatNumber(d.Hours)
	}
	return r
}

// Entry rebuilds the sum-typed entry. Only the columns of the record's own
// category are read; stray columns of other categories are dropped.
func (r Record) Entry() (Entry, error) {
	c := Category(strings.ToLower(strings.TrimSpace(r.Type)))
	if c == "event" {
		c = CategoryEvents
	}
	if !c.Valid() {
		return Entry{}, fmt.Errorf("record %s: unknown type %q", r.ID, r.Type)
	}

	e := Entry{
		ID:        r.ID,
		UserID:    r.UserID,
		Category:  c,
		Title:     r.Title,
		Content:   r.Content,
		Date:      r.Date,
		Time:      r.Time,
		Tags:      r.Tags,
		CreatedAt: r.CreatedAt,
	}

	switch c {
	case CategoryWellness:
		d := Wellness{Mood: r.Mood, Energy: r.Energy, SleepHours: r.SleepHours.FloatPtr(), SleepQuality: r.SleepQuality}
		if d != (Wellness{}) {
			e.Details = d
		}
	case CategoryExercise:
		if r.ExerciseType != "" || r.Duration.Valid || r.Intensity != "" {
			e.Details = Exercise{Kind: r.ExerciseType, DurationMinutes: r.Duration.IntPtr(), Intensity: r.Intensity}
		}
	case CategorySocial:
		if d := (Social{Type: r.SocialType, Energy: r.SocialEnergy}); d != (Social{}) {
			e.Details = d
		}
	case CategoryLearning:
		d := Learning{Skill: r.SkillName, Minutes: r.LearningTime.IntPtr(), Status: r.SkillStatus, Method: r.LearningMethod}
		if d != (Learning{}) {
			e.Details = d
		}
	case CategoryCreative:
		if d := (Creative{Type: r.CreativeType, Energy: r.CreativeEnergy}); d != (Creative{}) {
			e.Details = d
		}
	case CategoryCareer:
		d := Career{Activity: r.CareerActivity, Feeling: r.CareerFeeling, Hours: r.CareerHours.FloatPtr()}
		if d != (Career{}) {
			e.Details = d
		}
	}
	return e, nil
}

// MarshalJSON encodes the entry as its flat Record.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(FromEntry(e))
}

// UnmarshalJSON decodes a flat Record into the entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := r.Entry()
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

// Number is an optional numeric column. It decodes JSON numbers, numeric
// strings, empty strings and null.
type Number struct {
	Float float64
	Valid bool
}

// NewNumber returns a valid Number holding f.
func NewNumber(f float64) Number {
	return Number{Float: f, Valid: true}
}

// ParseNumber parses a decimal string. Blank input yields an invalid Number.
// NaN, infinities and values overflowing a float64 are rejected.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	f := d.InexactFloat64()
	if !finite(f) {
		return Number{}, fmt.Errorf("invalid number %q: must be a finite number", s)
	}
	return NewNumber(f), nil
}

func (n Number) IsZero() bool { return !n.Valid }

// String renders the number without trailing zeros, or "" when unset.
func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Float, 'f', -1, 64)
}

// FloatPtr returns the value as a pointer, nil when unset.
func (n Number) FloatPtr() *float64 {
	if !n.Valid {
		return nil
	}
	return Float(n.Float)
}

// IntPtr returns the value truncated to an int, nil when unset.
func (n Number) IntPtr() *int {
	if !n.Valid {
		return nil
	}
	return Int(int(n.Float))
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = Number{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = str
	}
	parsed, err := ParseNumber(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func floatNumber(v *float64) Number {
	if v == nil {
		return Number{}
	}
	return NewNumber(*v)
}

func intNumber(v *int) Number {
	if v == nil {
		return Number{}
	}
	return NewNumber(float64(*v))
}
