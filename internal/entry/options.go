package entry

import (
	"strings"
	"unicode"

	"github.com/xolan/daylog/internal/shared"
)

// Options is an enumeration of canonical display labels.
type Options []string

var (
	MoodOptions = Options{"😊 Happy", "😁 Excited", "😌 Calm", "😴 Tired", "😢 Sad", "😠 Angry", "😰 Anxious"}

	EnergyOptions = Options{"High (7-10)", "Medium (4-6)", "Low (1-3)"}

	SleepQualityOptions = Options{"Excellent", "Good", "Fair", "Poor"}

	ExerciseOptions = Options{"Running", "Walking", "Cycling", "Swimming", "Strength Training", "Yoga", "HIIT", "Sports", "Other"}

	IntensityOptions = Options{"Low", "Moderate", "High"}

	SocialTypeOptions = Options{"Friends", "Family", "Colleagues", "Partner", "Community", "Online"}

	SocialEnergyOptions = Options{"Energized", "Neutral", "Drained"}

	SkillStatusOptions = Options{"Started", "In Progress", "Practicing", "Completed"}

	LearningMethodOptions = Options{"Course", "Book", "Video", "Practice", "Mentor", "Other"}

	CreativeTypeOptions = Options{"Writing", "Drawing", "Music", "Photography", "Crafts", "Coding", "Other"}

	CreativeEnergyOptions = Options{"Inspired", "Flowing", "Neutral", "Blocked"}

	CareerFeelingOptions = Options{"Accomplished", "Productive", "Motivated", "Neutral", "Stressed", "Overwhelmed"}
)

// Normalize maps v to its canonical label. Matching is case-insensitive and
// accepts the full label, the label without its leading icon, or the first
// word of that text ("happy", "high"). An empty value stays empty.
func (o Options) Normalize(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	for _, opt := range o {
		plain := stripIcon(opt)
		if strings.EqualFold(opt, v) || strings.EqualFold(plain, v) {
			return opt, nil
		}
	}
	for _, opt := range o {
		if first, _, _ := strings.Cut(stripIcon(opt), " "); strings.EqualFold(first, v) {
			return opt, nil
		}
	}
	return "", shared.NewValidationError(field, "unknown value %q (choose one of: %s)", v, strings.Join(o.Plain(), ", "))
}

// Plain returns the labels without icons.
func (o Options) Plain() []string {
	out := make([]string, len(o))
	for i, opt := range o {
		out[i] = stripIcon(opt)
	}
	return out
}

func stripIcon(label string) string {
	return strings.TrimLeftFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
