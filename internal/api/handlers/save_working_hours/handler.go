package save_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	scheduleService "github.com/m04kA/SMC-StaffService/internal/service/schedules"
	"github.com/m04kA/SMC-StaffService/internal/service/schedules/models"
)

const (
	msgInvalidScheduleID   = "некорректный ID расписания"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidWorkingHours = "некорректные рабочие часы"
	msgNotFound            = "расписание не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedules/{scheduleId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /schedules/{id}/working-hours - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req models.SaveWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	schedule, err := h.service.SaveWorkingHours(r.Context(), scheduleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrScheduleNotFound):
			h.logger.Warn("PUT /schedules/{id}/working-hours - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleService.ErrInvalidWorkingHours):
			h.logger.Warn("PUT /schedules/{id}/working-hours - Invalid working hours: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		default:
			h.logger.Error("PUT /schedules/{id}/working-hours - Failed to save working hours: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedules/{id}/working-hours - Working hours saved successfully: schedule_id=%d", scheduleID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
