package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/andre1397/calculadora-TOTVS/internal/application/dto"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/model"
)

const (
	maxRequestBody = 1 << 16

	internalErrorMessage = "internal server error, please try again later"
)

// ScheduleCalculator is the use case behind POST /api/calculate.
type ScheduleCalculator interface {
	Execute(ctx context.Context, req dto.CalculateScheduleRequest) (dto.CalculateScheduleResponse, error)
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CalculatorHandler serves the amortization table over HTTP.
type CalculatorHandler struct {
	calculate ScheduleCalculator
	logger    *slog.Logger
}

// NewCalculatorHandler creates the calculator HTTP handler.
func NewCalculatorHandler(calculate ScheduleCalculator, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{calculate: calculate, logger: logger}
}

// RegisterRoutes attaches the calculator routes to the given mux.
func (h *CalculatorHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/calculate", h.calculateSchedule)
	mux.HandleFunc("POST /api/v1/schedules", h.createSchedule)
}

// calculateSchedule replies with the bare row array.
func (h *CalculatorHandler) calculateSchedule(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.execute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp.Rows)
}

// createSchedule replies with the rows, the summary and the schedule ID.
func (h *CalculatorHandler) createSchedule(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.execute(w, r)
	if !ok {
		return
	}
	w.Header().Set("X-Schedule-ID", resp.ScheduleID)
	writeJSON(w, http.StatusOK, resp)
}

func (h *CalculatorHandler) execute(w http.ResponseWriter, r *http.Request) (dto.CalculateScheduleResponse, bool) {
	var req dto.CalculateScheduleRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "malformed calculation request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "malformed_request",
			Message: "request body must be a JSON object: " + decodeProblem(err),
		})
		return dto.CalculateScheduleResponse{}, false
	}

	resp, err := h.calculate.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return dto.CalculateScheduleResponse{}, false
	}
	return resp, true
}

func (h *CalculatorHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if model.IsCallerError(err) {
		h.logger.WarnContext(r.Context(), "calculation rejected", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorCode(err), Message: err.Error()})
		return
	}
	h.logger.ErrorContext(r.Context(), "calculation failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: internalErrorMessage})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidDateOrder):
		return "invalid_date_order"
	case errors.Is(err, model.ErrNoInstallments):
		return "no_installments"
	default:
		return "invalid_request"
	}
}

func decodeProblem(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "empty body"
	case errors.As(err, &syntaxErr):
		return "invalid JSON"
	case errors.As(err, &typeErr):
		return "field " + typeErr.Field + " has the wrong type"
	default:
		return err.Error()
	}
}
