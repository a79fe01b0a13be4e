package create_time_off

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
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgInvalidDateRange   = "некорректный диапазон дат"
	msgStaffNotFound      = "сотрудник не найден"
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

// Handle POST /api/v1/staff/{staffId}/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /staff/{id}/time-off - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req models.CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	timeOff, err := h.service.Create(r.Context(), staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeoffService.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/time-off - Staff member not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, timeoffService.ErrInvalidDateRange):
			h.logger.Warn("POST /staff/{id}/time-off - Invalid date range: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, timeoffService.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/time-off - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /staff/{id}/time-off - Failed to create time off: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/time-off - Time off created successfully: time_off_id=%d, staff_id=%d",
		timeOff.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, timeOff)
}
