package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/andre1397/calculadora-TOTVS/internal/application/dto"
	"github.com/andre1397/calculadora-TOTVS/internal/application/usecase"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/event"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/model"
)

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.publishedEvents = append(m.publishedEvents, events...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustDate(t *testing.T, s string) dto.Date {
	t.Helper()
	d, err := dto.ParseDate(s)
	require.NoError(t, err)
	return d
}

func validRequest(t *testing.T) dto.CalculateScheduleRequest {
	return dto.CalculateScheduleRequest{
		StartDate:        mustDate(t, "2025-01-01"),
		FinalDate:        mustDate(t, "2025-04-01"),
		FirstPaymentDate: mustDate(t, "2025-02-01"),
		LoanAmount:       decimal.NewFromInt(10000),
		InterestRate:     decimal.RequireFromString("0.015"),
	}
}

func newUseCase(t *testing.T, publisher *mockEventPublisher) *usecase.CalculateScheduleUseCase {
	t.Helper()
	uc, err := usecase.NewCalculateScheduleUseCase(publisher, metricnoop.NewMeterProvider().Meter("test"),
		tracenoop.NewTracerProvider().Tracer("test"), discardLogger())
	require.NoError(t, err)
	return uc
}

func TestCalculateSchedule_Execute(t *testing.T) {
	t.Run("computes the schedule and publishes an event", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := newUseCase(t, publisher)

		resp, err := uc.Execute(context.Background(), validRequest(t))

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ScheduleID)
		require.Len(t, resp.Rows, 7)

		first := resp.Rows[0]
		assert.Equal(t, "2025-01-01", first.EffectiveDate.String())
		assert.True(t, decimal.NewFromInt(10000).Equal(first.LoanAmount.Decimal))
		assert.Nil(t, first.Consolidated)

		provision := resp.Rows[1]
		assert.Equal(t, "2025-01-31", provision.EffectiveDate.String())
		assert.Nil(t, provision.Consolidated)
		assert.True(t, provision.TotalPayment.IsZero())
		assert.True(t, provision.Provision.IsPositive())

		payment := resp.Rows[2]
		assert.Equal(t, "2025-02-03", payment.EffectiveDate.String())
		require.NotNil(t, payment.Consolidated)
		assert.Equal(t, "1/3", *payment.Consolidated)
		assert.Equal(t, "3333.33", payment.Amortization.StringFixed(2))
		assert.Equal(t, "6666.67", payment.PrincipalBalance.StringFixed(2))

		last := resp.Rows[len(resp.Rows)-1]
		assert.Equal(t, "2025-04-01", last.EffectiveDate.String())
		require.NotNil(t, last.Consolidated)
		assert.Equal(t, "3/3", *last.Consolidated)
		assert.True(t, last.PrincipalBalance.IsZero())

		assert.Equal(t, 3, resp.Summary.Installments)
		assert.Equal(t, "2025-02-03", resp.Summary.FirstPaymentDate.String())
		assert.Equal(t, "2025-04-01", resp.Summary.LastPaymentDate.String())

		require.Len(t, publisher.publishedEvents, 1)
		evt, ok := publisher.publishedEvents[0].(event.ScheduleCalculated)
		require.True(t, ok)
		assert.Equal(t, event.TypeScheduleCalculated, evt.EventType())
		assert.Equal(t, resp.ScheduleID, evt.AggregateID())
		assert.Equal(t, 3, evt.Installments)
		assert.Equal(t, 7, evt.Rows)
		assert.True(t, resp.Summary.TotalInterest.Equal(evt.TotalInterest))
	})

	t.Run("rejects malformed requests before calculating", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*dto.CalculateScheduleRequest)
			want   string
		}{
			{name: "missing start date", mutate: func(r *dto.CalculateScheduleRequest) { r.StartDate = dto.Date{} }, want: "startDate is required"},
			{name: "missing final date", mutate: func(r *dto.CalculateScheduleRequest) { r.FinalDate = dto.Date{} }, want: "finalDate is required"},
			{name: "missing first payment", mutate: func(r *dto.CalculateScheduleRequest) { r.FirstPaymentDate = dto.Date{} }, want: "firstPaymentDate is required"},
			{name: "zero amount", mutate: func(r *dto.CalculateScheduleRequest) { r.LoanAmount = decimal.Zero }, want: "loanAmount must be positive"},
			{name: "negative rate", mutate: func(r *dto.CalculateScheduleRequest) { r.InterestRate = decimal.NewFromInt(-1) }, want: "interestRate must be positive"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				publisher := &mockEventPublisher{}
				uc := newUseCase(t, publisher)
				req := validRequest(t)
				tt.mutate(&req)

				_, err := uc.Execute(context.Background(), req)

				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvalidRequest)
				assert.True(t, model.IsCallerError(err))
				assert.Contains(t, err.Error(), tt.want)
				assert.Empty(t, publisher.publishedEvents)
			})
		}
	})

	t.Run("reports every shape problem at once", func(t *testing.T) {
		uc := newUseCase(t, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CalculateScheduleRequest{})

		require.Error(t, err)
		for _, field := range []string{"startDate", "finalDate", "firstPaymentDate", "loanAmount", "interestRate"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("surfaces domain date errors", func(t *testing.T) {
		uc := newUseCase(t, &mockEventPublisher{})
		req := validRequest(t)
		req.FirstPaymentDate = mustDate(t, "2024-12-01")

		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidDateOrder)
		assert.Contains(t, err.Error(), "generate schedule")
	})

	t.Run("publish failure does not fail the calculation", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(ctx context.Context, events ...event.DomainEvent) error {
				return errors.New("broker unavailable")
			},
		}
		uc := newUseCase(t, publisher)

		resp, err := uc.Execute(context.Background(), validRequest(t))

		require.NoError(t, err)
		assert.Len(t, resp.Rows, 7)
		assert.Len(t, publisher.publishedEvents, 1)
	})
}

func TestCalculateSchedule_Instrumentation(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	uc, err := usecase.NewCalculateScheduleUseCase(&mockEventPublisher{},
		meterProvider.Meter("test"), tracerProvider.Tracer("test"), discardLogger())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = uc.Execute(ctx, validRequest(t))
	require.NoError(t, err)

	bad := validRequest(t)
	bad.LoanAmount = decimal.Zero
	_, err = uc.Execute(ctx, bad)
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	outcomes := map[string]int64{}
	var installmentCount uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				require.Equal(t, "loancalc.schedules.calculated", m.Name)
				for _, dp := range data.DataPoints {
					outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
					outcomes[outcome.AsString()] += dp.Value
				}
			case metricdata.Histogram[int64]:
				require.Equal(t, "loancalc.schedule.installments", m.Name)
				for _, dp := range data.DataPoints {
					installmentCount += dp.Count
					assert.Equal(t, int64(3), dp.Sum)
				}
			}
		}
	}
	assert.Equal(t, map[string]int64{usecase.OutcomeOK: 1, usecase.OutcomeInvalid: 1}, outcomes)
	assert.Equal(t, uint64(1), installmentCount)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "CalculateSchedule", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, usecase.OutcomeInvalid, spans[1].Status().Description)
}
