package update_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	timeoffService "github.com/m04kA/SMC-StaffService/internal/service/timeoff"
	"github.com/m04kA/SMC-StaffService/internal/service/timeoff/models"
)

const (
	msgInvalidTimeOffID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgInvalidDateRange   = "некорректный диапазон дат"
	msgTimeOffNotFound    = "заявка не найдена"
	msgNotEditable        = "заявку можно редактировать только в статусе pending"
)

type Handler struct {
	service TimeOffService
	logger  Logger
}

func NewHandler(service TimeOffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/time-off/{timeOffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	timeOffID, err := strconv.ParseInt(vars["timeOffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /time-off/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	var req models.UpdateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /time-off/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	timeOff, err := h.service.Update(r.Context(), timeOffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeoffService.ErrTimeOffNotFound):
			h.logger.Warn("PATCH /time-off/{id} - Time off not found: time_off_id=%d", timeOffID)
			handlers.RespondNotFound(w, msgTimeOffNotFound)

		case errors.Is(err, timeoffService.ErrInvalidTransition):
			h.logger.Warn("PATCH /time-off/{id} - Not editable: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, timeoffService.ErrInvalidDateRange):
			h.logger.Warn("PATCH /time-off/{id} - Invalid date range: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, timeoffService.ErrInvalidInput):
			h.logger.Warn("PATCH /time-off/{id} - Invalid input: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /time-off/{id} - Failed to update time off: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /time-off/{id} - Time off updated successfully: time_off_id=%d", timeOffID)
	handlers.RespondJSON(w, http.StatusOK, timeOff)
}
