package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andre1397/calculadora-TOTVS/internal/application/dto"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/model"
)

// ScheduleCalculator is the use case behind CalculateSchedule.
type ScheduleCalculator interface {
	Execute(ctx context.Context, req dto.CalculateScheduleRequest) (dto.CalculateScheduleResponse, error)
}

// CalculatorHandler implements CalculatorServiceServer.
type CalculatorHandler struct {
	UnimplementedCalculatorServiceServer
	calculate ScheduleCalculator
	logger    *slog.Logger
}

// NewCalculatorHandler creates the gRPC handler.
func NewCalculatorHandler(calculate ScheduleCalculator, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{calculate: calculate, logger: logger}
}

// CalculateSchedule returns the full schedule with its summary.
func (h *CalculatorHandler) CalculateSchedule(ctx context.Context, req *CalculateScheduleRequest) (*CalculateScheduleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.calculate.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *CalculatorHandler) toStatus(ctx context.Context, err error) error {
	if model.IsCallerError(err) {
		h.logger.WarnContext(ctx, "calculation rejected", "error", err)
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.ErrorContext(ctx, "calculation failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
