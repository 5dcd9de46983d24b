package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleSummary aggregates the payment rows of a schedule.
type ScheduleSummary struct {
	Installments      int
	FirstPaymentDate  time.Time
	LastPaymentDate   time.Time
	TotalAmortization decimal.Decimal
	TotalInterest     decimal.Decimal
	TotalPayment      decimal.Decimal
}

// Summarize totals the emitted (rounded) payment rows.
func Summarize(rows []ScheduleRow) ScheduleSummary {
	s := ScheduleSummary{
		TotalAmortization: decimal.Zero,
		TotalInterest:     decimal.Zero,
		TotalPayment:      decimal.Zero,
	}
	for _, r := range rows {
		if !r.IsPayment() {
			continue
		}
		if s.Installments == 0 {
			s.FirstPaymentDate = r.EffectiveDate
		}
		s.Installments++
		s.LastPaymentDate = r.EffectiveDate
		s.TotalAmortization = s.TotalAmortization.Add(r.Amortization)
		s.TotalInterest = s.TotalInterest.Add(r.Paid)
		s.TotalPayment = s.TotalPayment.Add(r.TotalPayment)
	}
	return s
}
