// Package dateutil holds the calendar arithmetic shared by the attendance
// ledger and the leave workflow. A working day is a Monday-Friday calendar
// date, irrespective of holiday status.
package dateutil

import "time"

// Truncate normalizes a timestamp to its calendar day (UTC midnight).
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WeekdaysBetween returns every weekday in [start, end] inclusive, normalized
// to calendar days, ascending.
func WeekdaysBetween(start, end time.Time) []time.Time {
	start = Truncate(start)
	end = Truncate(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			days = append(days, d)
		}
	}
	return days
}

// CountWorkingDays counts the weekdays in [start, end] inclusive.
func CountWorkingDays(start, end time.Time) int {
	return len(WeekdaysBetween(start, end))
}

// MonthBounds returns the first and last calendar day of (month, year).
func MonthBounds(month time.Month, year int) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}
