package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/violation"
	"github.com/resto-ops/backoffice-go/internal/handler/http/response"
)

type ViolationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Waive(w http.ResponseWriter, r *http.Request)
	SubmitPenalty(w http.ResponseWriter, r *http.Request)
}

type ViolationHandlerImpl struct {
	violationService violation.ViolationService
}

func NewViolationHandler(violationService violation.ViolationService) ViolationHandler {
	return &ViolationHandlerImpl{violationService: violationService}
}

// Create implements ViolationHandler.
func (h *ViolationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq violation.CreateViolationRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateViolation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	violationResponse, err := h.violationService.CreateViolation(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateViolation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Violation recorded", violationResponse)
}

// List implements ViolationHandler.
func (h *ViolationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := violation.ListViolationsFilter{
		UserID: r.URL.Query().Get("user_id"),
		Month:  r.URL.Query().Get("month"),
	}

	violations, err := h.violationService.ListViolations(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, violations)
}

// Waive implements ViolationHandler.
func (h *ViolationHandlerImpl) Waive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "violationID")

	violationResponse, err := h.violationService.Waive(r.Context(), id)
	if err != nil {
		slog.Error("WaiveViolation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, violationResponse)
}

// SubmitPenalty implements ViolationHandler.
func (h *ViolationHandlerImpl) SubmitPenalty(w http.ResponseWriter, r *http.Request) {
	var submitReq violation.SubmitPenaltyRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("SubmitPenalty decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	submitReq.ViolationID = chi.URLParam(r, "violationID")

	violationResponse, err := h.violationService.SubmitPenalty(r.Context(), submitReq)
	if err != nil {
		slog.Error("SubmitPenalty service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, violationResponse)
}
