// Package stats derives the dashboard from the full entry set: weekly
// count, averages, the 7-day mood and energy series, the category
// distribution and narrative insights. Nothing here touches storage.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/timeutil"
)

const (
	// NoData is shown in place of an average that has no samples.
	NoData = "—"

	// WeekDays is the size of the weekly window and of the series.
	WeekDays = 7

	// MaxInsights caps the insight list.
	MaxInsights = 4

	// EmptyInsight is the only insight when there are no entries.
	EmptyInsight = "Start logging entries to see insights!"
)

// Average is a mean rounded to one decimal.
type Average struct {
	Value   decimal.Decimal
	Samples int
}

// Valid reports whether the average has at least one sample.
func (a Average) Valid() bool {
	return a.Samples > 0
}

// String renders the average with one decimal, or NoData.
func (a Average) String() string {
	if !a.Valid() {
		return NoData
	}
	return a.Value.StringFixed(1)
}

// DayPoint is one day of the mood/energy series. A nil value marks a
// missing sample.
type DayPoint struct {
	Date   string
	Mood   *float64
	Energy *float64
}

// CategoryCount is the number of entries of one category.
type CategoryCount struct {
	Category entry.Category
	Count    int
}

// Summary is everything the dashboard shows.
type Summary struct {
	WeekCount     int
	AverageMood   Average
	AverageEnergy Average
	AverageSleep  Average
	Series        []DayPoint
	Distribution  []CategoryCount
	Insights      []string
}

// Summarize computes the dashboard for entries as of now.
func Summarize(entries []entry.Entry, now time.Time, scale Scale) Summary {
	wellness := wellnessEntries(entries)
	return Summary{
		WeekCount:     WeekCount(entries, now),
		AverageMood:   averageMood(wellness, scale.Mood),
		AverageEnergy: averageEnergy(wellness, scale.Energy),
		AverageSleep:  averageSleep(wellness),
		Series:        Series(entries, now, scale),
		Distribution:  Distribution(entries),
		Insights:      Insights(entries, scale),
	}
}

// WeekCount counts entries dated within the last WeekDays days, today
// included.
func WeekCount(entries []entry.Entry, now time.Time) int {
	count := 0
	for _, e := range entries {
		if timeutil.WithinDays(e.Date, now, WeekDays) {
			count++
		}
	}
	return count
}

// Series returns one point per day for the last WeekDays days, oldest
// first, taken from the first wellness entry dated that day.
func Series(entries []entry.Entry, now time.Time, scale Scale) []DayPoint {
	days := timeutil.LastNDays(now, WeekDays)
	points := make([]DayPoint, len(days))
	for i, day := range days {
		points[i] = DayPoint{Date: day}
		for _, e := range entries {
			if e.Category != entry.CategoryWellness || e.Date != day {
				continue
			}
			if w, ok := e.Details.(entry.Wellness); ok {
				if w.Mood != "" {
					points[i].Mood = entry.Float(scale.ChartMood.Value(w.Mood))
				}
				if w.Energy != "" {
					points[i].Energy = entry.Float(scale.ChartEnergy.Value(w.Energy))
				}
			}
			break
		}
	}
	return points
}

// Distribution counts entries per category in first-seen order.
func Distribution(entries []entry.Entry) []CategoryCount {
	var counts []CategoryCount
	index := make(map[entry.Category]int)
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(counts)
			index[e.Category] = i
			counts = append(counts, CategoryCount{Category: e.Category})
		}
		counts[i].Count++
	}
	return counts
}

// Insights generates up to MaxInsights sentences in fixed priority order.
func Insights(entries []entry.Entry, scale Scale) []string {
	if len(entries) == 0 {
		return []string{EmptyInsight}
	}

	var insights []string

	if top, ok := mostCommon(Distribution(entries)); ok {
		insights = append(insights, fmt.Sprintf("Your most logged activity is %s (%d entries)", top.Category, top.Count))
	}

	exercise, learning, learningMinutes := 0, 0, 0
	for _, e := range entries {
		switch e.Category {
		case entry.CategoryExercise:
			exercise++
		case entry.CategoryLearning:
			learning++
			if d, ok := e.Details.(entry.Learning); ok && d.Minutes != nil {
				learningMinutes += *d.Minutes
			}
		}
	}
	if exercise > 0 {
		insights = append(insights, fmt.Sprintf("You've logged %d exercise sessions", exercise))
	}
	if learning > 0 {
		insights = append(insights, fmt.Sprintf("Total learning time: %d minutes", learningMinutes))
	}

	if trend, ok := MoodTrend(entries, scale.ChartMood); ok {
		insights = append(insights, fmt.Sprintf("Your mood trend is %s over the last few entries", trend))
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

// MoodTrend compares the most recent wellness mood with the oldest of the
// three most recent ones. It needs at least two moods. Recency is by date,
// then time, then creation; ties keep the input order.
func MoodTrend(entries []entry.Entry, mood Mapping) (string, bool) {
	var window []entry.Entry
	for _, e := range entries {
		if w, ok := e.Details.(entry.Wellness); ok && e.Category == entry.CategoryWellness && w.Mood != "" {
			window = append(window, e)
		}
	}
	sort.SliceStable(window, func(i, j int) bool {
		a, b := window[i], window[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.Time != b.Time {
			return a.Time > b.Time
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	if len(window) > 3 {
		window = window[:3]
	}
	if len(window) < 2 {
		return "", false
	}

	latest := mood.Value(window[0].Details.(entry.Wellness).Mood)
	oldest := mood.Value(window[len(window)-1].Details.(entry.Wellness).Mood)
	if latest > oldest {
		return "improving", true
	}
	return "declining", true
}

func mostCommon(counts []CategoryCount) (CategoryCount, bool) {
	var best CategoryCount
	found := false
	for _, c := range counts {
		if !found || c.Count > best.Count {
			best = c
			found = true
		}
	}
	return best, found
}

func wellnessEntries(entries []entry.Entry) []entry.Wellness {
	var out []entry.Wellness
	for _, e := range entries {
		if e.Category != entry.CategoryWellness {
			continue
		}
		if w, ok := e.Details.(entry.Wellness); ok {
			out = append(out, w)
		}
	}
	return out
}

func averageMood(wellness []entry.Wellness, m Mapping) Average {
	var values []float64
	for _, w := range wellness {
		if w.Mood != "" {
			values = append(values, m.Value(w.Mood))
		}
	}
	return mean(values)
}

func averageEnergy(wellness []entry.Wellness, m Mapping) Average {
	var values []float64
	for _, w := range wellness {
		if w.Energy == "" {
			continue
		}
		if v := m.Value(w.Energy); v > 0 {
			values = append(values, v)
		}
	}
	return mean(values)
}

func averageSleep(wellness []entry.Wellness) Average {
	var values []float64
	for _, w := range wellness {
		if w.SleepHours != nil {
			values = append(values, *w.SleepHours)
		}
	}
	return mean(values)
}

func mean(values []float64) Average {
	if len(values) == 0 {
		return Average{}
	}
	sum := decimal.Zero
	n := 0
	for _, v := range values {
		// Rows written straight to a database may hold NaN or infinities.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(v))
		n++
	}
	if n == 0 {
		return Average{}
	}
	return Average{
		Value:   sum.Div(decimal.NewFromInt(int64(n))).Round(1),
		Samples: n,
	}
}
