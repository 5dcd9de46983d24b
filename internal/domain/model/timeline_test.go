package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andre1397/calculadora-TOTVS/internal/domain/calendar"
)

func d(year int, month time.Month, day int) time.Time {
	return calendar.Date(year, month, day)
}

func TestGenerateEventDates(t *testing.T) {
	t.Run("anchors keep day of month and month ends are added", func(t *testing.T) {
		got := GenerateEventDates(d(2025, 1, 1), d(2025, 4, 1), d(2025, 2, 3))

		assert.Equal(t, []time.Time{
			d(2025, 1, 1),
			d(2025, 1, 31),
			d(2025, 2, 3),
			d(2025, 2, 28),
			d(2025, 3, 3),
			d(2025, 3, 31),
			d(2025, 4, 1),
		}, got)
	})

	t.Run("month-end first payment pins anchors to month ends", func(t *testing.T) {
		got := GenerateEventDates(d(2025, 1, 10), d(2025, 4, 30), d(2025, 1, 31))

		assert.Equal(t, []time.Time{
			d(2025, 1, 10),
			d(2025, 1, 31),
			d(2025, 2, 28),
			d(2025, 3, 31),
			d(2025, 4, 30),
		}, got)
	})

	t.Run("day of month survives a short month", func(t *testing.T) {
		got := GenerateEventDates(d(2025, 1, 5), d(2025, 3, 30), d(2025, 1, 30))

		assert.Contains(t, got, d(2025, 2, 28))
		assert.Contains(t, got, d(2025, 3, 30))
		assert.NotContains(t, got, d(2025, 3, 28))
	})

	t.Run("clamped anchor recovers its day of month", func(t *testing.T) {
		start, final, first := d(2025, 1, 5), d(2025, 4, 30), d(2025, 1, 30)

		events := GenerateEventDates(start, final, first)

		assert.Equal(t, []time.Time{
			d(2025, 1, 5),
			d(2025, 1, 30),
			d(2025, 1, 31),
			d(2025, 2, 28),
			d(2025, 3, 30),
			d(2025, 3, 31),
			d(2025, 4, 30),
		}, events)
		assert.Equal(t, []time.Time{
			d(2025, 1, 30),
			d(2025, 3, 31),
			d(2025, 4, 30),
		}, SelectPaymentDates(events, start, final, first))
	})

	t.Run("final date is added when stepping skips it", func(t *testing.T) {
		got := GenerateEventDates(d(2025, 1, 1), d(2025, 3, 20), d(2025, 2, 10))

		assert.Equal(t, d(2025, 3, 20), got[len(got)-1])
		assert.Contains(t, got, d(2025, 3, 10))
	})

	t.Run("output is strictly increasing", func(t *testing.T) {
		got := GenerateEventDates(d(2025, 1, 31), d(2026, 1, 31), d(2025, 2, 28))

		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].After(got[i-1]), "dates not increasing at %d", i)
		}
	})
}

func TestSelectPaymentDates(t *testing.T) {
	t.Run("month ends are not installments", func(t *testing.T) {
		events := GenerateEventDates(d(2025, 1, 1), d(2025, 4, 1), d(2025, 2, 3))

		got := SelectPaymentDates(events, d(2025, 1, 1), d(2025, 4, 1), d(2025, 2, 3))

		assert.Equal(t, []time.Time{d(2025, 2, 3), d(2025, 3, 3), d(2025, 4, 1)}, got)
	})

	t.Run("installments roll to the next business day", func(t *testing.T) {
		start, final, first := d(2025, 1, 15), d(2025, 7, 15), d(2025, 2, 17)
		events := GenerateEventDates(start, final, first)

		got := SelectPaymentDates(events, start, final, first)

		assert.Len(t, got, 6)
		// 2025-05-17 is a Saturday.
		assert.Contains(t, got, d(2025, 5, 19))
		assert.NotContains(t, got, d(2025, 5, 17))
		for _, p := range got {
			assert.True(t, calendar.IsBusinessDay(p), "%s is not a business day", p)
		}
	})

	t.Run("final date on a weekend is forced in and rolled", func(t *testing.T) {
		start, final, first := d(2025, 1, 10), d(2025, 5, 31), d(2025, 1, 31)
		events := GenerateEventDates(start, final, first)

		got := SelectPaymentDates(events, start, final, first)

		assert.Equal(t, []time.Time{d(2025, 6, 2)}, got)
	})

	t.Run("final date is selected even when absent from the events", func(t *testing.T) {
		events := []time.Time{d(2025, 1, 1), d(2025, 1, 31), d(2025, 2, 28)}

		got := SelectPaymentDates(events, d(2025, 1, 1), d(2025, 3, 14), d(2025, 1, 15))

		assert.Equal(t, []time.Time{d(2025, 3, 14)}, got)
	})

	t.Run("dates before the first payment are dropped", func(t *testing.T) {
		events := []time.Time{d(2025, 1, 1), d(2025, 1, 15), d(2025, 2, 15), d(2025, 3, 14)}

		got := SelectPaymentDates(events, d(2025, 1, 1), d(2025, 3, 14), d(2025, 2, 15))

		assert.Equal(t, []time.Time{d(2025, 2, 17), d(2025, 3, 14)}, got)
	})

	t.Run("colliding adjusted dates collapse", func(t *testing.T) {
		// 2025-11-15 (Saturday, holiday) and 2025-11-16 (Sunday) both roll to 2025-11-17.
		events := []time.Time{d(2025, 11, 1), d(2025, 11, 15), d(2025, 11, 16), d(2025, 11, 17)}

		got := SelectPaymentDates(events, d(2025, 11, 1), d(2025, 11, 17), d(2025, 11, 15))

		assert.Equal(t, []time.Time{d(2025, 11, 17)}, got)
	})
}

func TestProcessingTimeline(t *testing.T) {
	events := []time.Time{d(2025, 1, 1), d(2025, 1, 31), d(2025, 2, 1)}
	payments := []time.Time{d(2025, 2, 3)}

	got := ProcessingTimeline(events, payments)

	assert.Equal(t, []time.Time{d(2025, 1, 1), d(2025, 1, 31), d(2025, 2, 1), d(2025, 2, 3)}, got)
}
