package dto

import (
	"github.com/shopspring/decimal"
)

// CalculateScheduleRequest carries the inputs of a SAC schedule calculation.
// Amounts accept JSON numbers or numeric strings.
type CalculateScheduleRequest struct {
	StartDate        Date            `json:"startDate"`
	FinalDate        Date            `json:"finalDate"`
	FirstPaymentDate Date            `json:"firstPaymentDate"`
	LoanAmount       decimal.Decimal `json:"loanAmount"`
	InterestRate     decimal.Decimal `json:"interestRate"`
}

// ScheduleRowResponse is one line of the amortization table. Consolidated is
// the "k/N" installment label, null on non-payment rows.
type ScheduleRowResponse struct {
	EffectiveDate      Date    `json:"effectiveDate"`
	LoanAmount         Amount  `json:"loanAmount"`
	OutstandingBalance Amount  `json:"outstandingBalance"`
	Consolidated       *string `json:"consolidated"`
	TotalPayment       Amount  `json:"totalPayment"`
	Amortization       Amount  `json:"amortization"`
	PrincipalBalance   Amount  `json:"principalBalance"`
	Provision          Amount  `json:"provision"`
	Accumulated        Amount  `json:"accumulated"`
	Paid               Amount  `json:"paid"`
}

// ScheduleSummaryResponse totals the payment rows.
type ScheduleSummaryResponse struct {
	Installments      int    `json:"installments"`
	FirstPaymentDate  Date   `json:"firstPaymentDate"`
	LastPaymentDate   Date   `json:"lastPaymentDate"`
	TotalAmortization Amount `json:"totalAmortization"`
	TotalInterest     Amount `json:"totalInterest"`
	TotalPayment      Amount `json:"totalPayment"`
}

// CalculateScheduleResponse is the result of a calculation.
type CalculateScheduleResponse struct {
	ScheduleID string                  `json:"scheduleId"`
	Rows       []ScheduleRowResponse   `json:"rows"`
	Summary    ScheduleSummaryResponse `json:"summary"`
}
