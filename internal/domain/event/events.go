package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andre1397/calculadora-TOTVS/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// Event types.
const (
	TypeScheduleCalculated = "loancalc.schedule.calculated"

	aggregateSchedule = "Schedule"
)

// ScheduleCalculated is raised after a schedule has been computed. Amounts
// are the emitted (rounded) totals; the rows themselves are not carried.
type ScheduleCalculated struct {
	events.BaseEvent
	StartDate        string          `json:"start_date"`
	FinalDate        string          `json:"final_date"`
	FirstPaymentDate string          `json:"first_payment_date"`
	LoanAmount       decimal.Decimal `json:"loan_amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	Installments     int             `json:"installments"`
	Rows             int             `json:"rows"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
	TotalPayment     decimal.Decimal `json:"total_payment"`
}

// NewScheduleCalculated builds the event for the schedule identified by scheduleID.
func NewScheduleCalculated(
	scheduleID string,
	start, final, firstPayment time.Time,
	loanAmount, interestRate decimal.Decimal,
	installments, rows int,
	totalInterest, totalPayment decimal.Decimal,
) ScheduleCalculated {
	return ScheduleCalculated{
		BaseEvent:        events.NewBaseEvent(TypeScheduleCalculated, scheduleID, aggregateSchedule),
		StartDate:        start.Format(time.DateOnly),
		FinalDate:        final.Format(time.DateOnly),
		FirstPaymentDate: firstPayment.Format(time.DateOnly),
		LoanAmount:       loanAmount,
		InterestRate:     interestRate,
		Installments:     installments,
		Rows:             rows,
		TotalInterest:    totalInterest,
		TotalPayment:     totalPayment,
	}
}
