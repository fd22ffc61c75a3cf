package domain

import "time"

// Business dates are calendar days. They are normalized to midnight UTC so that
// comparisons and storage in DATE columns never depend on the server's zone.

// DateOf returns the calendar day of t, as seen in t's own location, at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped moves date forward by months keeping the day of month of date,
// clamped to the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the month.
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of the month.
func MonthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month, DaysIn(year, month), 0, 0, 0, 0, time.UTC)
}

// InMonth reports whether date falls in the given month.
func InMonth(date time.Time, year int, month time.Month) bool {
	y, m, _ := date.Date()
	return y == year && m == month
}
