package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	GetByWeek(w http.ResponseWriter, r *http.Request)
	ListForRange(w http.ResponseWriter, r *http.Request)
	SetPublished(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// Upsert implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var upsertReq schedule.UpsertScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&upsertReq); err != nil {
		slog.Error("UpsertSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	upsertReq.WeekID = chi.URLParam(r, "weekID")

	scheduleResponse, err := h.scheduleService.UpsertSchedule(r.Context(), upsertReq)
	if err != nil {
		slog.Error("UpsertSchedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, scheduleResponse)
}

// GetByWeek implements ScheduleHandler.
func (h *ScheduleHandlerImpl) GetByWeek(w http.ResponseWriter, r *http.Request) {
	weekID := chi.URLParam(r, "weekID")

	scheduleResponse, err := h.scheduleService.GetSchedule(r.Context(), weekID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, scheduleResponse)
}

// ListForRange implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListForRange(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	schedules, err := h.scheduleService.GetSchedulesForRange(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedules)
}

// SetPublished implements ScheduleHandler.
func (h *ScheduleHandlerImpl) SetPublished(w http.ResponseWriter, r *http.Request) {
	var publishReq schedule.SetPublishedRequest

	if err := json.NewDecoder(r.Body).Decode(&publishReq); err != nil {
		slog.Error("SetPublished decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	publishReq.WeekID = chi.URLParam(r, "weekID")

	if err := h.scheduleService.SetPublished(r.Context(), publishReq); err != nil {
		slog.Error("SetPublished service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule publication updated", nil)
}
