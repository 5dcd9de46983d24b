// Package calendar provides the business-day calendar used to roll payment
// dates, together with the civil-date helpers the schedule generator needs.
package calendar

import "time"

type monthDay struct {
	month time.Month
	day   int
}

// fixedHolidays are national holidays observed on the same day every year.
var fixedHolidays = map[monthDay]struct{}{
	{time.January, 1}:   {},
	{time.April, 21}:    {},
	{time.May, 1}:       {},
	{time.September, 7}: {},
	{time.October, 12}:  {},
	{time.November, 2}:  {},
	{time.November, 15}: {},
	{time.December, 25}: {},
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether the month and day of t match a fixed holiday,
// regardless of year.
func IsHoliday(t time.Time) bool {
	_, ok := fixedHolidays[monthDay{t.Month(), t.Day()}]
	return ok
}

// IsBusinessDay checks weekends and the fixed holiday set.
func IsBusinessDay(t time.Time) bool {
	return !IsWeekend(t) && !IsHoliday(t)
}

// NextBusinessDay applies the Following convention: t is returned unchanged
// when it is already a business day, otherwise the first business day after it.
func NextBusinessDay(t time.Time) time.Time {
	for !IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
