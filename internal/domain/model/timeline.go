package model

import (
	"slices"
	"time"

	"github.com/andre1397/calculadora-TOTVS/internal/domain/calendar"
)

// dateSet is a set of civil dates.
type dateSet map[time.Time]struct{}

func (s dateSet) add(dates ...time.Time) {
	for _, d := range dates {
		s[calendar.Truncate(d)] = struct{}{}
	}
}

func (s dateSet) contains(d time.Time) bool {
	_, ok := s[d]
	return ok
}

func (s dateSet) sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// anchorStrategy yields the k-th monthly anchor counted from the first
// payment date (k = 0 is the first payment itself).
type anchorStrategy func(first time.Time, k int) time.Time

// newAnchorStrategy picks the stepping rule once: a first payment on the last
// day of its month pins every following anchor to a month end, any other day
// of month is preserved (clamped in shorter months).
func newAnchorStrategy(first time.Time) anchorStrategy {
	if calendar.IsEndOfMonth(first) {
		return func(from time.Time, k int) time.Time {
			return calendar.EndOfMonth(calendar.AddMonths(from, k))
		}
	}
	return calendar.AddMonths
}

// GenerateEventDates returns the sorted, unshifted set of dates the engine has
// to visit: the start date, the monthly payment anchors up to the final date,
// the final date itself and every month end from the start month onwards.
func GenerateEventDates(startDate, finalDate, firstPaymentDate time.Time) []time.Time {
	return generateEventDates(startDate, finalDate, firstPaymentDate).sorted()
}

func generateEventDates(startDate, finalDate, firstPaymentDate time.Time) dateSet {
	dates := dateSet{}
	dates.add(startDate)

	anchor := newAnchorStrategy(firstPaymentDate)
	for k := 0; ; k++ {
		d := anchor(firstPaymentDate, k)
		if d.After(finalDate) {
			break
		}
		dates.add(d)
	}
	dates.add(finalDate)

	for m := calendar.EndOfMonth(startDate); !m.After(finalDate); m = calendar.EndOfMonth(calendar.AddMonths(m, 1)) {
		dates.add(m)
	}

	return dates
}

// SelectPaymentDates filters the installment dates out of the event dates and
// rolls each of them to the next business day. Month ends are accrual
// checkpoints and only count as installments when they are the final date.
// The final date is always an installment.
func SelectPaymentDates(eventDates []time.Time, startDate, finalDate, firstPaymentDate time.Time) []time.Time {
	adjusted := dateSet{}
	hasFinal := false
	for _, d := range eventDates {
		isFinal := d.Equal(finalDate)
		candidate := (d.After(startDate) && !calendar.IsEndOfMonth(d)) || isFinal
		if !candidate || d.Before(firstPaymentDate) {
			continue
		}
		hasFinal = hasFinal || isFinal
		adjusted.add(calendar.NextBusinessDay(d))
	}
	if !hasFinal {
		adjusted.add(calendar.NextBusinessDay(finalDate))
	}
	return adjusted.sorted()
}

// ProcessingTimeline merges the raw event dates with the business-day
// adjusted payment dates.
func ProcessingTimeline(eventDates, paymentDates []time.Time) []time.Time {
	all := dateSet{}
	all.add(eventDates...)
	all.add(paymentDates...)
	return all.sorted()
}
