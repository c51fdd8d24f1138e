package entry

import (
	"math"
	"strings"

	"github.com/xolan/daylog/internal/shared"
)

// Details holds the attributes specific to one entry category. The set of
// implementations is closed: Wellness, Exercise, Social, Learning, Creative
// and Career.
type Details interface {
	Category() Category
	// Descriptors returns the populated text fields, in column order.
	Descriptors() []string
	normalize() (Details, error)
}

// Wellness tracks mood, energy and sleep.
type Wellness struct {
	Mood         string
	Energy       string
	SleepHours   *float64
	SleepQuality string
}

// Exercise tracks a workout. Kind is required.
type Exercise struct {
	Kind            string
	DurationMinutes *int
	Intensity       string
}

// Social tracks time spent with others.
type Social struct {
	Type   string
	Energy string
}

// Learning tracks progress on a skill.
type Learning struct {
	Skill   string
	Minutes *int
	Status  string
	Method  string
}

// Creative tracks creative work.
type Creative struct {
	Type   string
	Energy string
}

// Career tracks work activity.
type Career struct {
	Activity string
	Feeling  string
	Hours    *float64
}

func (Wellness) Category() Category { return CategoryWellness }
func (Exercise) Category() Category { return CategoryExercise }
func (Social) Category() Category   { return CategorySocial }
func (Learning) Category() Category { return CategoryLearning }
func (Creative) Category() Category { return CategoryCreative }
func (Career) Category() Category   { return CategoryCareer }

func (d Wellness) Descriptors() []string {
	return nonEmpty(d.Mood, d.Energy, d.SleepQuality)
}

func (d Exercise) Descriptors() []string {
	return nonEmpty(d.Kind, d.Intensity)
}

func (d Social) Descriptors() []string {
	return nonEmpty(d.Type, d.Energy)
}

func (d Learning) Descriptors() []string {
	return nonEmpty(d.Skill, d.Status, d.Method)
}

func (d Creative) Descriptors() []string {
	return nonEmpty(d.Type, d.Energy)
}

func (d Career) Descriptors() []string {
	return nonEmpty(d.Activity, d.Feeling)
}

func (d Wellness) normalize() (Details, error) {
	var err error
	if d.Mood, err = MoodOptions.Normalize("mood", d.Mood); err != nil {
		return nil, err
	}
	if d.Energy, err = EnergyOptions.Normalize("energy", d.Energy); err != nil {
		return nil, err
	}
	if d.SleepQuality, err = SleepQualityOptions.Normalize("sleep_quality", d.SleepQuality); err != nil {
		return nil, err
	}
	if d.SleepHours != nil && (!finite(*d.SleepHours) || *d.SleepHours < 0 || *d.SleepHours > 24) {
		return nil, shared.NewValidationError("sleep_hours", "must be between 0 and 24")
	}
	return d, nil
}

func (d Exercise) normalize() (Details, error) {
	var err error
	if strings.TrimSpace(d.Kind) == "" {
		return nil, shared.NewValidationError("exercise_type", "is required for exercise entries")
	}
	if d.Kind, err = ExerciseOptions.Normalize("exercise_type", d.Kind); err != nil {
		return nil, err
	}
	if d.Intensity, err = IntensityOptions.Normalize("intensity", d.Intensity); err != nil {
		return nil, err
	}
	if d.DurationMinutes != nil && *d.DurationMinutes < 0 {
		return nil, shared.NewValidationError("duration", "cannot be negative")
	}
	return d, nil
}

func (d Social) normalize() (Details, error) {
	var err error
	if d.Type, err = SocialTypeOptions.Normalize("social_type", d.Type); err != nil {
		return nil, err
	}
	if d.Energy, err = SocialEnergyOptions.Normalize("social_energy", d.Energy); err != nil {
		return nil, err
	}
	return d, nil
}

func (d Learning) normalize() (Details, error) {
	var err error
	d.Skill = strings.TrimSpace(d.Skill)
	if d.Status, err = SkillStatusOptions.Normalize("skill_status", d.Status); err != nil {
		return nil, err
	}
	if d.Method, err = LearningMethodOptions.Normalize("learning_method", d.Method); err != nil {
		return nil, err
	}
	if d.Minutes != nil && *d.Minutes < 0 {
		return nil, shared.NewValidationError("learning_time", "cannot be negative")
	}
	return d, nil
}

func (d Creative) normalize() (Details, error) {
	var err error
	if d.Type, err = CreativeTypeOptions.Normalize("creative_type", d.Type); err != nil {
		return nil, err
	}
	if d.Energy, err = CreativeEnergyOptions.Normalize("creative_energy", d.Energy); err != nil {
		return nil, err
	}
	return d, nil
}

func (d Career) normalize() (Details, error) {
	var err error
	d.Activity = strings.TrimSpace(d.Activity)
	if d.Feeling, err = CareerFeelingOptions.Normalize("career_feeling", d.Feeling); err != nil {
		return nil, err
	}
	if d.Hours != nil && (!finite(*d.Hours) || *d.Hours < 0 || *d.Hours > 24) {
		return nil, shared.NewValidationError("career_hours", "must be between 0 and 24")
	}
	return d, nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
