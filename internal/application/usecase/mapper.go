package usecase

import (
	"github.com/andre1397/calculadora-TOTVS/internal/application/dto"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/model"
)

func toScheduleResponse(id string, rows []model.ScheduleRow, summary model.ScheduleSummary) dto.CalculateScheduleResponse {
	out := make([]dto.ScheduleRowResponse, len(rows))
	for i, r := range rows {
		out[i] = toRowResponse(r)
	}
	return dto.CalculateScheduleResponse{
		ScheduleID: id,
		Rows:       out,
		Summary: dto.ScheduleSummaryResponse{
			Installments:      summary.Installments,
			FirstPaymentDate:  dto.NewDate(summary.FirstPaymentDate),
			LastPaymentDate:   dto.NewDate(summary.LastPaymentDate),
			TotalAmortization: dto.NewAmount(summary.TotalAmortization),
			TotalInterest:     dto.NewAmount(summary.TotalInterest),
			TotalPayment:      dto.NewAmount(summary.TotalPayment),
		},
	}
}

func toRowResponse(r model.ScheduleRow) dto.ScheduleRowResponse {
	var consolidated *string
	if r.IsPayment() {
		label := r.Consolidated
		consolidated = &label
	}
	return dto.ScheduleRowResponse{
		EffectiveDate:      dto.NewDate(r.EffectiveDate),
		LoanAmount:         dto.NewAmount(r.LoanAmount),
		OutstandingBalance: dto.NewAmount(r.OutstandingBalance),
		Consolidated:       consolidated,
		TotalPayment:       dto.NewAmount(r.TotalPayment),
		Amortization:       dto.NewAmount(r.Amortization),
		PrincipalBalance:   dto.NewAmount(r.PrincipalBalance),
		Provision:          dto.NewAmount(r.Provision),
		Accumulated:        dto.NewAmount(r.Accumulated),
		Paid:               dto.NewAmount(r.Paid),
	}
}
