package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/resto-ops/backoffice-go/internal/handler/http/response"
)

type PenaltyHandler interface {
	ListAbsences(w http.ResponseWriter, r *http.Request)
	ApplyPenalty(w http.ResponseWriter, r *http.Request)
}

type PenaltyHandlerImpl struct {
	penaltyService penalty.PenaltyService
}

func NewPenaltyHandler(penaltyService penalty.PenaltyService) PenaltyHandler {
	return &PenaltyHandlerImpl{penaltyService: penaltyService}
}

// ListAbsences implements PenaltyHandler.
func (h *PenaltyHandlerImpl) ListAbsences(w http.ResponseWriter, r *http.Request) {
	listReq := penalty.ListAbsencesRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	clusters, err := h.penaltyService.ListAbsences(r.Context(), listReq)
	if err != nil {
		slog.Error("ListAbsences service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, clusters)
}

// ApplyPenalty implements PenaltyHandler.
func (h *PenaltyHandlerImpl) ApplyPenalty(w http.ResponseWriter, r *http.Request) {
	var applyReq penalty.ApplyPenaltyRequest

	if err := json.NewDecoder(r.Body).Decode(&applyReq); err != nil {
		slog.Error("ApplyPenalty decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	applyResponse, err := h.penaltyService.ApplyPenalty(r.Context(), applyReq)
	if err != nil {
		slog.Error("ApplyPenalty service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if applyResponse.Skipped {
		response.SuccessWithMessage(w, "Penalty already applied, skipped", applyResponse)
		return
	}
	response.Success(w, applyResponse)
}
