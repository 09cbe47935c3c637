package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
	"github.com/resto-ops/backoffice-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	GetSheet(w http.ResponseWriter, r *http.Request)
	AddAdvance(w http.ResponseWriter, r *http.Request)
	AddBonus(w http.ResponseWriter, r *http.Request)
	DeleteAdjustment(w http.ResponseWriter, r *http.Request)
	UpdatePayment(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Calculate implements PayrollHandler.
func (h *PayrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	monthID := chi.URLParam(r, "monthID")

	sheetResponse, err := h.payrollService.CalculateSheet(r.Context(), monthID)
	if err != nil {
		slog.Error("CalculateSheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, sheetResponse)
}

// GetSheet implements PayrollHandler.
func (h *PayrollHandlerImpl) GetSheet(w http.ResponseWriter, r *http.Request) {
	monthID := chi.URLParam(r, "monthID")

	sheetResponse, err := h.payrollService.GetSheet(r.Context(), monthID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sheetResponse)
}

// AddAdvance implements PayrollHandler.
func (h *PayrollHandlerImpl) AddAdvance(w http.ResponseWriter, r *http.Request) {
	h.addAdjustment(w, r, payroll.AdjustmentKindAdvance)
}

// AddBonus implements PayrollHandler.
func (h *PayrollHandlerImpl) AddBonus(w http.ResponseWriter, r *http.Request) {
	h.addAdjustment(w, r, payroll.AdjustmentKindBonus)
}

func (h *PayrollHandlerImpl) addAdjustment(w http.ResponseWriter, r *http.Request, kind payroll.AdjustmentKind) {
	var addReq payroll.AddAdjustmentRequest

	if err := json.NewDecoder(r.Body).Decode(&addReq); err != nil {
		slog.Error("AddAdjustment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	addReq.MonthID = chi.URLParam(r, "monthID")
	addReq.Kind = kind

	adjustmentResponse, err := h.payrollService.AddAdjustment(r.Context(), addReq)
	if err != nil {
		slog.Error("AddAdjustment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment recorded", adjustmentResponse)
}

// DeleteAdjustment implements PayrollHandler.
func (h *PayrollHandlerImpl) DeleteAdjustment(w http.ResponseWriter, r *http.Request) {
	monthID := chi.URLParam(r, "monthID")
	adjustmentID := chi.URLParam(r, "adjustmentID")

	if err := h.payrollService.DeleteAdjustment(r.Context(), monthID, adjustmentID); err != nil {
		slog.Error("DeleteAdjustment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment deleted", nil)
}

// UpdatePayment implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var updateReq payroll.UpdatePaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdatePayment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.MonthID = chi.URLParam(r, "monthID")
	updateReq.UserID = chi.URLParam(r, "userID")

	if err := h.payrollService.UpdatePayment(r.Context(), updateReq); err != nil {
		slog.Error("UpdatePayment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment status updated", nil)
}
