package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/andre1397/calculadora-TOTVS/internal/application/dto"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/event"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/model"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/port"
)

// Outcome attribute values of the calculation counter.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// CalculateScheduleUseCase validates a request, computes its SAC schedule and
// announces the result.
type CalculateScheduleUseCase struct {
	publisher    port.EventPublisher
	tracer       trace.Tracer
	logger       *slog.Logger
	calculated   metric.Int64Counter
	installments metric.Int64Histogram
}

// NewCalculateScheduleUseCase wires dependencies and registers the
// calculation instruments on meter.
func NewCalculateScheduleUseCase(
	publisher port.EventPublisher,
	meter metric.Meter,
	tracer trace.Tracer,
	logger *slog.Logger,
) (*CalculateScheduleUseCase, error) {
	calculated, err := meter.Int64Counter("loancalc.schedules.calculated",
		metric.WithDescription("Schedule calculations by outcome."),
		metric.WithUnit("{schedule}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}
	installments, err := meter.Int64Histogram("loancalc.schedule.installments",
		metric.WithDescription("Installments per calculated schedule."),
		metric.WithUnit("{installment}"),
		metric.WithExplicitBucketBoundaries(1, 3, 6, 12, 24, 36, 48, 60, 120, 240, 360),
	)
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	return &CalculateScheduleUseCase{
		publisher:    publisher,
		tracer:       tracer,
		logger:       logger,
		calculated:   calculated,
		installments: installments,
	}, nil
}

// Execute computes the schedule for req. Caller errors satisfy
// model.IsCallerError; any other error is an internal fault.
func (uc *CalculateScheduleUseCase) Execute(
	ctx context.Context,
	req dto.CalculateScheduleRequest,
) (dto.CalculateScheduleResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "CalculateSchedule")
	defer span.End()

	loan, err := toLoanRequest(req)
	if err != nil {
		uc.fail(ctx, span, err)
		return dto.CalculateScheduleResponse{}, err
	}
	span.SetAttributes(
		attribute.String("loan.start_date", req.StartDate.String()),
		attribute.String("loan.final_date", req.FinalDate.String()),
		attribute.String("loan.first_payment_date", req.FirstPaymentDate.String()),
	)

	rows, err := model.GenerateSchedule(loan)
	if err != nil {
		err = fmt.Errorf("generate schedule: %w", err)
		uc.fail(ctx, span, err)
		return dto.CalculateScheduleResponse{}, err
	}
	summary := model.Summarize(rows)
	scheduleID := uuid.NewString()

	span.SetAttributes(
		attribute.String("schedule.id", scheduleID),
		attribute.Int("schedule.installments", summary.Installments),
		attribute.Int("schedule.rows", len(rows)),
	)
	uc.calculated.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", OutcomeOK)))
	uc.installments.Record(ctx, int64(summary.Installments))

	evt := event.NewScheduleCalculated(scheduleID,
		loan.StartDate, loan.FinalDate, loan.FirstPaymentDate,
		loan.LoanAmount, loan.InterestRate,
		summary.Installments, len(rows),
		summary.TotalInterest, summary.TotalPayment,
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish schedule event",
			"schedule_id", scheduleID,
			"error", err,
		)
	}

	uc.logger.DebugContext(ctx, "schedule calculated",
		"schedule_id", scheduleID,
		"installments", summary.Installments,
		"rows", len(rows),
	)

	return toScheduleResponse(scheduleID, rows, summary), nil
}

func (uc *CalculateScheduleUseCase) fail(ctx context.Context, span trace.Span, err error) {
	outcome := OutcomeFailed
	if model.IsCallerError(err) {
		outcome = OutcomeInvalid
	}
	uc.calculated.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
}

// toLoanRequest checks the request shape and converts it to the domain input.
// Date ordering is left to the domain.
func toLoanRequest(req dto.CalculateScheduleRequest) (model.LoanRequest, error) {
	var problems []string
	if req.StartDate.IsZero() {
		problems = append(problems, "startDate is required")
	}
	if req.FinalDate.IsZero() {
		problems = append(problems, "finalDate is required")
	}
	if req.FirstPaymentDate.IsZero() {
		problems = append(problems, "firstPaymentDate is required")
	}
	if !req.LoanAmount.IsPositive() {
		problems = append(problems, "loanAmount must be positive")
	}
	if !req.InterestRate.IsPositive() {
		problems = append(problems, "interestRate must be positive")
	}
	if len(problems) > 0 {
		return model.LoanRequest{}, fmt.Errorf("%w: %s", model.ErrInvalidRequest, strings.Join(problems, "; "))
	}

	return model.NewLoanRequest(
		req.StartDate.Time, req.FinalDate.Time, req.FirstPaymentDate.Time,
		req.LoanAmount, req.InterestRate,
	), nil
}
