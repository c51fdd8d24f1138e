package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a date string in YYYY-MM-DD or DD/MM/YYYY format.
// Returns the parsed date at midnight (start of day) in local timezone.
// For ambiguous dates (like 05/06/2024), ISO format (YYYY-MM-DD) is preferred.
//
// Valid inputs:
//   - "2024-01-15" (ISO format)
//   - "15/01/2024" (European format)
//
// Invalid inputs return an error with suggested formats.
func ParseDate(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	t, err := time.ParseInLocation(DateLayout, input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	t, err = time.ParseInLocation("02/01/2006", input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	return time.Time{}, buildDateParseError(input)
}

// NormalizeDate parses input with ParseDate and returns it as YYYY-MM-DD.
func NormalizeDate(input string) (string, error) {
	t, err := ParseDate(strings.TrimSpace(input))
	if err != nil {
		return "", err
	}
	return DateString(t), nil
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	isoPartialRe := regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	yearOnlyRe := regexp.MustCompile(`^\d{4}$`)
	isoPartialDayRe := regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	euroPartialRe := regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)

	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// NormalizeClock parses a clock time in H:MM or HH:MM (24-hour) format and
// returns it zero-padded as HH:MM.
func NormalizeClock(input string) (string, error) {
	input = strings.TrimSpace(input)
	m := clockPattern.FindStringSubmatch(input)
	if m == nil {
		return "", fmt.Errorf("invalid time '%s' (use 24-hour HH:MM, e.g., 09:30 or 21:15)", input)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return "", fmt.Errorf("invalid time '%s': out of range", input)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// FormatClock12 renders an HH:MM clock as a 12-hour time such as "9:05 PM".
// Inputs that are not HH:MM are returned unchanged.
func FormatClock12(clock string) string {
	m := clockPattern.FindStringSubmatch(clock)
	if m == nil {
		return clock
	}
	hour, _ := strconv.Atoi(m[1])
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, m[2], suffix)
}

// FormatLongDate renders a YYYY-MM-DD date as "January 15, 2024".
func FormatLongDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
