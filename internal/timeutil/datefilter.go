package timeutil

import "time"

// DateLayout is the calendar date layout used for entry dates.
const DateLayout = "2006-01-02"

// ClockLayout is the 24-hour clock layout used for entry times.
const ClockLayout = "15:04"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateString formats t as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ClockString formats t as HH:MM.
func ClockString(t time.Time) string {
	return t.Format(ClockLayout)
}

// LastNDays returns the calendar dates of the n days ending on now's date,
// oldest first. LastNDays(now, 7)[6] is today.
func LastNDays(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	today := StartOfDay(now)
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = DateString(today.AddDate(0, 0, i-(n-1)))
	}
	return days
}

// WithinDays reports whether the calendar date falls in [today-days, today],
// where today is now's date. Unparseable dates are outside every window.
func WithinDays(date string, now time.Time, days int) bool {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := StartOfDay(now)
	lower := today.AddDate(0, 0, -days)
	return !d.Before(lower) && !d.After(today)
}
