package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
	"github.com/xolan/daylog/internal/form"
	"github.com/xolan/daylog/internal/service"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a journal entry",
	Long: `Add a journal entry. A category and a title are required; date and time
default to now. Each category has its own detail flags, and flags of other
categories are rejected.

Enumerated values accept the label with or without its icon, or its first
word: --mood happy, --energy high, --intensity moderate.

Category flags:
  wellness   --mood --energy --sleep-hours --sleep-quality
  exercise   --exercise-type (required) --duration --intensity
  social     --social-type --social-energy
  learning   --skill --learning-time --skill-status --learning-method
  creative   --creative-type --creative-energy
  career     --career-activity --career-feeling --career-hours

Presets from the config file prefill category, title and details; explicit
flags win.

Examples:
  daylog add -c journal -t "Morning pages" --content "Slept well" --tags "morning, writing"
  daylog add -c wellness -t "Check-in" --mood calm --energy medium --sleep-hours 7.5
  daylog add -c exercise -t "Run" --exercise-type running --duration 30 --intensity high
  daylog add --preset run`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addEntry(cmd)
	},
}

// addFlags maps each add flag to the form field it fills.
var addFlags = []struct {
	name  string
	short string
	field form.Field
	usage string
}{
	{"title", "t", form.FieldTitle, "Entry title (required)"},
	{"content", "", form.FieldContent, "Free text"},
	{"date", "d", form.FieldDate, "Entry date (YYYY-MM-DD, DD/MM/YYYY, today, yesterday; default today)"},
	{"time", "", form.FieldTime, "Entry time HH:MM (default now)"},
	{"tags", "", form.FieldTags, "Comma-separated tags"},

	{"mood", "", form.FieldMood, "Wellness mood"},
	{"energy", "", form.FieldEnergy, "Wellness energy level"},
	{"sleep-hours", "", form.FieldSleepHours, "Hours slept"},
	{"sleep-quality", "", form.FieldSleepQuality, "Sleep quality"},

	{"exercise-type", "", form.FieldExerciseType, "Exercise type"},
	{"duration", "", form.FieldDuration, "Exercise duration in minutes"},
	{"intensity", "", form.FieldIntensity, "Exercise intensity"},

	{"social-type", "", form.FieldSocialType, "Who you spent time with"},
	{"social-energy", "", form.FieldSocialEnergy, "How it left you"},

	{"skill", "", form.FieldSkillName, "Skill being learned"},
	{"learning-time", "", form.FieldLearningTime, "Minutes spent learning"},
	{"skill-status", "", form.FieldSkillStatus, "Learning progress"},
	{"learning-method", "", form.FieldLearningMethod, "How you learned"},

	{"creative-type", "", form.FieldCreativeType, "Kind of creative work"},
	{"creative-energy", "", form.FieldCreativeEnergy, "Creative flow"},

	{"career-activity", "", form.FieldCareerActivity, "Work activity"},
	{"career-feeling", "", form.FieldCareerFeeling, "How work felt"},
	{"career-hours", "", form.FieldCareerHours, "Hours worked"},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("category", "c", "", "Entry category")
	addCmd.Flags().StringP("preset", "p", "", "Prefill from a preset in the config file")
	for _, f := range addFlags {
		addCmd.Flags().StringP(f.name, f.short, "", f.usage)
	}
	_ = addCmd.RegisterFlagCompletionFunc("category", completeCategories)
}

// addRequestFromFlags collects the flags the user set. Unset flags are
// left out so presets and defaults apply.
func addRequestFromFlags(cmd *cobra.Command) (service.AddRequest, bool) {
	category, _ := cmd.Flags().GetString("category")
	preset, _ := cmd.Flags().GetString("preset")

	req := service.AddRequest{
		Preset:   preset,
		Category: category,
		Values:   map[form.Field]string{},
	}
	for _, f := range addFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, _ := cmd.Flags().GetString(f.name)
		if f.field == form.FieldDate {
			date, err := resolveDate(v)
			if err != nil {
				flagError(err, "")
				return service.AddRequest{}, false
			}
			v = date
		}
		req.Values[f.field] = v
	}
	return req, true
}

// addEntry handles the add command logic
func addEntry(cmd *cobra.Command) {
	req, ok := addRequestFromFlags(cmd)
	if !ok {
		return
	}
	d := requireDeps(cmd.Context())
	if d == nil {
		return
	}
	handlers.AddEntry(cmd.Context(), d, req)
}
