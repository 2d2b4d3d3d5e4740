// Package calendar provides the week arithmetic shared by meal plans and shopping lists.
//
// Weeks start on Sunday. Dates are keyed as ISO dates ("2006-01-02") in the
// location of the time they were derived from.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the layout of every date key persisted by the core.
const DateLayout = "2006-01-02"

// DaysPerWeek is the number of days covered by a week plan.
const DaysPerWeek = 7

// WeekStart returns midnight of the Sunday starting the week that contains t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// DateKey formats t as a date key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a date key into midnight UTC of that date.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	return t, nil
}

// WeekDays returns the seven days of the week beginning at start.
func WeekDays(start time.Time) []time.Time {
	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeekDayKeys returns the date keys of the seven days of the week beginning at start.
func WeekDayKeys(start time.Time) []string {
	keys := make([]string, DaysPerWeek)
	for i, d := range WeekDays(start) {
		keys[i] = DateKey(d)
	}
	return keys
}

// InWeek reports whether the date key day falls within the week beginning at start.
func InWeek(start time.Time, day string) bool {
	for _, k := range WeekDayKeys(start) {
		if k == day {
			return true
		}
	}
	return false
}

// DateRange renders a week as "Jan 7 - Jan 13, 2024".
func DateRange(start time.Time) string {
	end := start.AddDate(0, 0, DaysPerWeek-1)
	return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}

// WeekOf renders the start of a week as "Sun Jan 07 2024".
func WeekOf(start time.Time) string {
	return start.Format("Mon Jan 02 2006")
}

// DayName returns the full weekday name of t, e.g. "Sunday".
func DayName(t time.Time) string {
	return t.Weekday().String()
}
