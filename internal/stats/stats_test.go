package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/daylog/internal/entry"
)

func makeTime(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.Local)
}

func wellness(date string, w entry.Wellness) entry.Entry {
	return entry.Entry{Category: entry.CategoryWellness, Title: "check-in", Date: date, Details: w}
}

func plain(cat entry.Category, date string) entry.Entry {
	return entry.Entry{Category: cat, Title: string(cat), Date: date}
}

func TestAverageMood(t *testing.T) {
	entries := []entry.Entry{
		wellness("2024-01-15", entry.Wellness{Mood: "😊 Happy"}),
		wellness("2024-01-14", entry.Wellness{Mood: "😴 Tired"}),
		wellness("2024-01-13", entry.Wellness{Energy: "High (7-10)"}),
		plain(entry.CategoryJournal, "2024-01-13"),
	}

	s := Summarize(entries, makeTime(2024, time.January, 15, 12, 0, 0), DefaultScale())
	assert.Equal(t, "3.5", s.AverageMood.String())
	assert.Equal(t, 2, s.AverageMood.Samples)
}

func TestAverageMood_UnknownLabelIsNeutral(t *testing.T) {
	entries := []entry.Entry{
		wellness("2024-01-15", entry.Wellness{Mood: "🤔 Pensive"}),
		wellness("2024-01-15", entry.Wellness{Mood: "😌 Calm"}),
	}
	s := Summarize(entries, makeTime(2024, time.January, 15, 0, 0, 0), DefaultScale())
	assert.Equal(t, "3.5", s.AverageMood.String())
}

func TestAverageSleep(t *testing.T) {
	entries := []entry.Entry{
		wellness("2024-01-15", entry.Wellness{SleepHours: entry.Float(6)}),
		wellness("2024-01-14", entry.Wellness{SleepHours: entry.Float(8)}),
		wellness("2024-01-13", entry.Wellness{Mood: "😌 Calm"}),
	}
	s := Summarize(entries, makeTime(2024, time.January, 15, 0, 0, 0), DefaultScale())
	assert.Equal(t, "7.0", s.AverageSleep.String())
}

func TestAverageSleep_SkipsNonFinite(t *testing.T) {
	entries := []entry.Entry{
		wellness("2024-01-15", entry.Wellness{SleepHours: entry.Float(math.NaN())}),
		wellness("2024-01-14", entry.Wellness{SleepHours: entry.Float(math.Inf(1))}),
		wellness("2024-01-13", entry.Wellness{SleepHours: entry.Float(8)}),
	}

	var s Summary
	require.NotPanics(t, func() {
		s = Summarize(entries, makeTime(2024, time.January, 15, 0, 0, 0), DefaultScale())
	})
	assert.Equal(t, "8.0", s.AverageSleep.String())
	assert.Equal(t, 1, s.AverageSleep.Samples)

	only := []entry.Entry{wellness("2024-01-15", entry.Wellness{SleepHours: entry.Float(math.NaN())})}
	assert.Equal(t, NoData, Summarize(only, makeTime(2024, time.January, 15, 0, 0, 0), DefaultScale()).AverageSleep.String())
}

func TestAverageEnergy_SkipsZeroValues(t *testing.T) {
	entries := []entry.Entry{
		wellness("2024-01-15", entry.Wellness{Energy: "High (7-10)"}),
		wellness("2024-01-15", entry.Wellness{Energy: "Low (1-3)"}),
		wellness("2024-01-15", entry.Wellness{Energy: "Unknown"}),
	}
	s := Summarize(entries, makeTime(2024, time.January, 15, 0, 0, 0), DefaultScale())
	assert.Equal(t, "5.3", s.AverageEnergy.String())
	assert.Equal(t, 2, s.AverageEnergy.Samples)
}

func TestAverages_NoData(t *testing.T) {
	s := Summarize([]entry.Entry{plain(entry.CategoryFood, "2024-01-15")}, makeTime(2024, time.January, 15, 0, 0, 0), DefaultScale())
	assert.Equal(t, NoData, s.AverageMood.String())
	assert.Equal(t, NoData, s.AverageEnergy.String())
	assert.Equal(t, NoData, s.AverageSleep.String())
}

func TestWeekCount_Boundary(t *testing.T) {
	entries := []entry.Entry{
		plain(entry.CategoryJournal, "2024-01-08"),
		plain(entry.CategoryJournal, "2024-01-07"),
	}
	now := makeTime(2024, time.January, 15, 0, 0, 0)
	assert.Equal(t, 1, WeekCount(entries, now))

	// Time of day does not move the window.
	assert.Equal(t, 1, WeekCount(entries, makeTime(2024, time.January, 15, 23, 59, 0)))
}

func TestSeries(t *testing.T) {
	now := makeTime(2024, time.January, 15, 20, 0, 0)
	entries := []entry.Entry{
		wellness("2024-01-15", entry.Wellness{Mood: "😊 Happy", Energy: "High (7-10)"}),
		wellness("2024-01-15", entry.Wellness{Mood: "😢 Sad"}),
		wellness("2024-01-12", entry.Wellness{Energy: "Low (1-3)"}),
		plain(entry.CategoryExercise, "2024-01-11"),
		wellness("2024-01-01", entry.Wellness{Mood: "😌 Calm"}),
	}

	series := Series(entries, now, DefaultScale())
	require.Len(t, series, WeekDays)
	assert.Equal(t, "2024-01-09", series[0].Date)
	assert.Equal(t, "2024-01-15", series[6].Date)

	// First wellness entry of the day wins.
	require.NotNil(t, series[6].Mood)
	assert.Equal(t, 8.0, *series[6].Mood)
	assert.Equal(t, 8.5, *series[6].Energy)

	assert.Nil(t, series[3].Mood)
	require.NotNil(t, series[3].Energy)
	assert.Equal(t, 2.5, *series[3].Energy)

	assert.Nil(t, series[2].Mood, "non-wellness day is missing")
	assert.Nil(t, series[0].Energy)
}

func TestDistribution(t *testing.T) {
	entries := []entry.Entry{
		plain(entry.CategoryFood, "2024-01-15"),
		plain(entry.CategoryJournal, "2024-01-15"),
		plain(entry.CategoryFood, "2024-01-14"),
	}
	assert.Equal(t, []CategoryCount{
		{entry.CategoryFood, 2},
		{entry.CategoryJournal, 1},
	}, Distribution(entries))
	assert.Empty(t, Distribution(nil))
}

func TestInsights_Empty(t *testing.T) {
	assert.Equal(t, []string{EmptyInsight}, Insights(nil, DefaultScale()))
}

func TestInsights_Order(t *testing.T) {
	entries := []entry.Entry{
		wellness("2024-01-15", entry.Wellness{Mood: "😊 Happy"}),
		{Category: entry.CategoryLearning, Title: "Go", Date: "2024-01-15", Details: entry.Learning{Skill: "Go", Minutes: entry.Int(30)}},
		{Category: entry.CategoryLearning, Title: "Go", Date: "2024-01-14", Details: entry.Learning{Skill: "Go", Minutes: entry.Int(45)}},
		{Category: entry.CategoryLearning, Title: "Go", Date: "2024-01-13"},
		{Category: entry.CategoryExercise, Title: "Run", Date: "2024-01-14", Details: entry.Exercise{Kind: "Running"}},
		wellness("2024-01-14", entry.Wellness{Mood: "😌 Calm"}),
		wellness("2024-01-13", entry.Wellness{Mood: "😢 Sad"}),
	}

	insights := Insights(entries, DefaultScale())
	assert.Equal(t, []string{
		"Your most logged activity is wellness (3 entries)",
		"You've logged 1 exercise sessions",
		"Total learning time: 75 minutes",
		"Your mood trend is improving over the last few entries",
	}, insights)
}

func TestInsights_TieBreakFirstSeen(t *testing.T) {
	entries := []entry.Entry{
		plain(entry.CategoryFood, "2024-01-15"),
		plain(entry.CategoryJournal, "2024-01-15"),
		plain(entry.CategoryJournal, "2024-01-14"),
		plain(entry.CategoryFood, "2024-01-14"),
	}
	insights := Insights(entries, DefaultScale())
	require.NotEmpty(t, insights)
	assert.Equal(t, "Your most logged activity is food (2 entries)", insights[0])
	assert.Len(t, insights, 1)
}

func TestMoodTrend(t *testing.T) {
	scale := DefaultScale().ChartMood

	tests := []struct {
		name     string
		entries  []entry.Entry
		expected string
		ok       bool
	}{
		{
			name: "improving by date regardless of slice order",
			entries: []entry.Entry{
				wellness("2024-01-10", entry.Wellness{Mood: "😢 Sad"}),
				wellness("2024-01-11", entry.Wellness{Mood: "😌 Calm"}),
				wellness("2024-01-12", entry.Wellness{Mood: "😊 Happy"}),
			},
			expected: "improving",
			ok:       true,
		},
		{
			name: "declining",
			entries: []entry.Entry{
				wellness("2024-01-12", entry.Wellness{Mood: "😴 Tired"}),
				wellness("2024-01-11", entry.Wellness{Mood: "😊 Happy"}),
			},
			expected: "declining",
			ok:       true,
		},
		{
			name: "equal is declining",
			entries: []entry.Entry{
				wellness("2024-01-12", entry.Wellness{Mood: "😌 Calm"}),
				wellness("2024-01-11", entry.Wellness{Mood: "😌 Calm"}),
			},
			expected: "declining",
			ok:       true,
		},
		{
			name: "only the three most recent count",
			entries: []entry.Entry{
				wellness("2024-01-13", entry.Wellness{Mood: "😊 Happy"}),
				wellness("2024-01-12", entry.Wellness{Mood: "😊 Happy"}),
				wellness("2024-01-11", entry.Wellness{Mood: "😊 Happy"}),
				wellness("2024-01-01", entry.Wellness{Mood: "😢 Sad"}),
			},
			expected: "declining",
			ok:       true,
		},
		{
			name: "needs two moods",
			entries: []entry.Entry{
				wellness("2024-01-12", entry.Wellness{Mood: "😊 Happy"}),
				wellness("2024-01-11", entry.Wellness{Energy: "Low (1-3)"}),
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, ok := MoodTrend(tt.entries, scale)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, trend)
		})
	}
}

func TestInsights_CappedAtFour(t *testing.T) {
	var entries []entry.Entry
	for _, d := range []string{"2024-01-15", "2024-01-14", "2024-01-13"} {
		entries = append(entries,
			wellness(d, entry.Wellness{Mood: "😊 Happy"}),
			entry.Entry{Category: entry.CategoryExercise, Title: "x", Date: d, Details: entry.Exercise{Kind: "Yoga"}},
			entry.Entry{Category: entry.CategoryLearning, Title: "x", Date: d},
		)
	}
	assert.Len(t, Insights(entries, DefaultScale()), MaxInsights)
}
