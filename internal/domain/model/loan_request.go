package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andre1397/calculadora-TOTVS/internal/domain/calendar"
)

// Caller-facing failures. Anything else returned by this package is an
// internal fault.
var (
	// ErrInvalidDateOrder is returned when the final date does not follow the
	// start date, or the first payment falls outside [start, final].
	ErrInvalidDateOrder = errors.New("invalid date ordering")

	// ErrNoInstallments is returned when no payment date can be derived from
	// the requested period.
	ErrNoInstallments = errors.New("no installments found in the period")

	// ErrInvalidRequest is returned for malformed input: a missing date or a
	// non-positive amount or rate.
	ErrInvalidRequest = errors.New("invalid request")
)

// IsCallerError reports whether err was caused by the request rather than by
// a fault in the calculation.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrInvalidDateOrder) ||
		errors.Is(err, ErrNoInstallments) ||
		errors.Is(err, ErrInvalidRequest)
}

// LoanRequest is the immutable input of a SAC schedule calculation. Amount and
// rate are expected to be strictly positive; InterestRate is the periodic rate
// matching the 360-day count base.
type LoanRequest struct {
	StartDate        time.Time
	FinalDate        time.Time
	FirstPaymentDate time.Time
	LoanAmount       decimal.Decimal
	InterestRate     decimal.Decimal
}

// NewLoanRequest builds a LoanRequest with all dates reduced to civil dates.
func NewLoanRequest(
	startDate, finalDate, firstPaymentDate time.Time,
	loanAmount, interestRate decimal.Decimal,
) LoanRequest {
	return LoanRequest{
		StartDate:        calendar.Truncate(startDate),
		FinalDate:        calendar.Truncate(finalDate),
		FirstPaymentDate: calendar.Truncate(firstPaymentDate),
		LoanAmount:       loanAmount,
		InterestRate:     interestRate,
	}
}

// ValidateDates checks the date ordering rules. It runs before any schedule
// computation.
func (r LoanRequest) ValidateDates() error {
	if !r.FinalDate.After(r.StartDate) {
		return fmt.Errorf("%w: final date %s must be after start date %s",
			ErrInvalidDateOrder, formatDate(r.FinalDate), formatDate(r.StartDate))
	}
	if r.FirstPaymentDate.Before(r.StartDate) || r.FirstPaymentDate.After(r.FinalDate) {
		return fmt.Errorf("%w: first payment date %s must be between start date %s and final date %s",
			ErrInvalidDateOrder, formatDate(r.FirstPaymentDate), formatDate(r.StartDate), formatDate(r.FinalDate))
	}
	return nil
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
