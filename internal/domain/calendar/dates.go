package calendar

import "time"

// Date returns midnight UTC of the given civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock and location of t, keeping its civil date.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndOfMonth returns the last day of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()))
}

// IsEndOfMonth reports whether t is the last calendar day of its month.
func IsEndOfMonth(t time.Time) bool {
	return t.Day() == DaysInMonth(t.Year(), t.Month())
}

// AddMonths behaves like Excel's EDATE: the day of month is kept and clamped
// to the target month's length, avoiding Go's normalization (Jan 31 + 1 month
// is Feb 28, not Mar 3).
func AddMonths(t time.Time, months int) time.Time {
	first := Date(t.Year(), t.Month(), 1).AddDate(0, months, 0)
	day := t.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return Date(first.Year(), first.Month(), day)
}

// DaysBetween returns the number of calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Truncate(end).Sub(Truncate(start)).Hours() / 24)
}
