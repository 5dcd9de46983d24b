package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andre1397/calculadora-TOTVS/internal/domain/calendar"
)

const (
	// DayCountBase is the actual/360 denominator.
	DayCountBase = 360

	// CalculationPrecision is the number of fractional digits carried by the
	// accrual state. Only emitted rows are rounded to CurrencyScale.
	CalculationPrecision = 30

	// CurrencyScale is the number of fractional digits of emitted amounts.
	CurrencyScale = 2

	// exponentPrecision bounds the day-count exponent and the compound factor.
	exponentPrecision = 40
)

var one = decimal.NewFromInt(1)

// ScheduleRow is an immutable line of a SAC amortization schedule. Amounts are
// rounded half-up to CurrencyScale. Consolidated holds the "k/N" installment
// label on payment rows and is empty on the disbursement and provision rows.
type ScheduleRow struct {
	EffectiveDate      time.Time
	LoanAmount         decimal.Decimal
	OutstandingBalance decimal.Decimal
	Consolidated       string
	TotalPayment       decimal.Decimal
	Amortization       decimal.Decimal
	PrincipalBalance   decimal.Decimal
	Provision          decimal.Decimal
	Accumulated        decimal.Decimal
	Paid               decimal.Decimal
}

// IsPayment reports whether the row settles an installment.
func (r ScheduleRow) IsPayment() bool {
	return r.Consolidated != ""
}

// accrual is the running state threaded through the schedule walk. All
// amounts carry CalculationPrecision digits.
type accrual struct {
	principal   decimal.Decimal
	accumulated decimal.Decimal
	previous    time.Time
	installment int
}

// engine holds the per-request constants of the walk.
type engine struct {
	onePlusRate  decimal.Decimal
	amortization decimal.Decimal
	payments     dateSet
	installments int
	factors      map[int]decimal.Decimal
}

func newEngine(req LoanRequest, paymentDates []time.Time) engine {
	payments := dateSet{}
	payments.add(paymentDates...)
	amortization := req.LoanAmount.DivRound(decimal.NewFromInt(int64(len(paymentDates))), CalculationPrecision)
	return engine{
		onePlusRate:  one.Add(req.InterestRate),
		amortization: amortization,
		payments:     payments,
		installments: len(paymentDates),
		factors:      make(map[int]decimal.Decimal),
	}
}

// interestFactor returns (1 + rate)^(days/360) - 1.
func (e engine) interestFactor(days int) (decimal.Decimal, error) {
	if f, ok := e.factors[days]; ok {
		return f, nil
	}
	exponent := decimal.NewFromInt(int64(days)).
		DivRound(decimal.NewFromInt(DayCountBase), exponentPrecision)
	pow, err := e.onePlusRate.PowWithPrecision(exponent, exponentPrecision)
	if err != nil {
		return decimal.Zero, fmt.Errorf("compound factor for %d days: %w", days, err)
	}
	f := pow.Sub(one)
	e.factors[days] = f
	return f, nil
}

// step accrues interest from s.previous to d and settles an installment when
// d is a payment date. The returned bool is false when d does not advance the
// walk, in which case the state is returned untouched.
func (e engine) step(s accrual, d time.Time) (accrual, ScheduleRow, bool, error) {
	days := calendar.DaysBetween(s.previous, d)
	if days <= 0 {
		return s, ScheduleRow{}, false, nil
	}

	factor, err := e.interestFactor(days)
	if err != nil {
		return s, ScheduleRow{}, false, err
	}
	periodInterest := s.principal.Add(s.accumulated).Mul(factor).Round(CalculationPrecision)
	s.accumulated = s.accumulated.Add(periodInterest)

	amortizationPaid := decimal.Zero
	interestPaid := decimal.Zero
	totalPayment := decimal.Zero
	label := ""

	if e.payments.contains(d) {
		s.installment++
		amortizationPaid = e.amortization
		interestPaid = s.accumulated
		totalPayment = amortizationPaid.Add(interestPaid)

		s.principal = s.principal.Sub(amortizationPaid)
		s.accumulated = decimal.Zero
		label = fmt.Sprintf("%d/%d", s.installment, e.installments)

		if s.installment == e.installments {
			amortizationPaid = amortizationPaid.Add(s.principal)
			s.principal = decimal.Zero
		}
	}

	s.previous = d
	return s, ScheduleRow{
		EffectiveDate:      d,
		LoanAmount:         decimal.Zero,
		OutstandingBalance: currency(s.principal.Add(s.accumulated)),
		Consolidated:       label,
		TotalPayment:       currency(totalPayment),
		Amortization:       currency(amortizationPaid),
		PrincipalBalance:   currency(s.principal),
		Provision:          currency(periodInterest),
		Accumulated:        currency(s.accumulated),
		Paid:               currency(interestPaid),
	}, true, nil
}

// GenerateSchedule computes the SAC schedule for req: a disbursement row on
// the start date followed by one row per timeline date, month-end provisions
// and business-day adjusted installments interleaved.
//
// The first payment date is rolled to the next business day before the
// calendar of anchors is generated. The last installment absorbs the residue
// of the constant amortization so the principal ends at exactly zero.
func GenerateSchedule(req LoanRequest) ([]ScheduleRow, error) {
	if err := req.ValidateDates(); err != nil {
		return nil, err
	}

	firstPayment := calendar.NextBusinessDay(req.FirstPaymentDate)
	eventDates := GenerateEventDates(req.StartDate, req.FinalDate, firstPayment)
	paymentDates := SelectPaymentDates(eventDates, req.StartDate, req.FinalDate, firstPayment)
	// SelectPaymentDates always keeps the final date, so this only guards
	// against a change in the selector.
	if len(paymentDates) == 0 {
		return nil, fmt.Errorf("%w: between %s and %s",
			ErrNoInstallments, formatDate(req.StartDate), formatDate(req.FinalDate))
	}
	timeline := ProcessingTimeline(eventDates, paymentDates)

	e := newEngine(req, paymentDates)
	rows := make([]ScheduleRow, 0, len(timeline))
	rows = append(rows, disbursementRow(req))

	state := accrual{
		principal:   req.LoanAmount,
		accumulated: decimal.Zero,
		previous:    req.StartDate,
	}
	for _, d := range timeline {
		if d.Equal(req.StartDate) {
			continue
		}
		next, row, ok, err := e.step(state, d)
		if err != nil {
			return nil, fmt.Errorf("accrue interest on %s: %w", formatDate(d), err)
		}
		if !ok {
			continue
		}
		state = next
		rows = append(rows, row)
	}

	if state.installment != e.installments {
		return nil, fmt.Errorf("schedule settled %d of %d installments", state.installment, e.installments)
	}
	return rows, nil
}

func disbursementRow(req LoanRequest) ScheduleRow {
	amount := currency(req.LoanAmount)
	return ScheduleRow{
		EffectiveDate:      req.StartDate,
		LoanAmount:         amount,
		OutstandingBalance: amount,
		TotalPayment:       decimal.Zero,
		Amortization:       decimal.Zero,
		PrincipalBalance:   amount,
		Provision:          decimal.Zero,
		Accumulated:        decimal.Zero,
		Paid:               decimal.Zero,
	}
}

func currency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}
