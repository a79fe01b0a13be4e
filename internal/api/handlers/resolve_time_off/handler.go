package resolve_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffService/internal/api/middleware"
	timeoffService "github.com/m04kA/SMC-StaffService/internal/service/timeoff"
	"github.com/m04kA/SMC-StaffService/internal/service/timeoff/models"
)

const (
	msgInvalidTimeOffID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgTimeOffNotFound    = "заявка не найдена"
	msgInvalidTransition  = "недопустимый переход статуса заявки"
	msgUnauthorized       = "пользователь не авторизован"
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

// Handle POST /api/v1/time-off/{timeOffId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	timeOffID, err := strconv.ParseInt(vars["timeOffId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /time-off/{id}/resolve - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	resolvedByID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /time-off/{id}/resolve - Missing user ID in context: time_off_id=%d", timeOffID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.ResolveTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-off/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	timeOff, err := h.service.Resolve(r.Context(), timeOffID, resolvedByID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeoffService.ErrTimeOffNotFound):
			h.logger.Warn("POST /time-off/{id}/resolve - Time off not found: time_off_id=%d", timeOffID)
			handlers.RespondNotFound(w, msgTimeOffNotFound)

		case errors.Is(err, timeoffService.ErrInvalidTransition):
			h.logger.Warn("POST /time-off/{id}/resolve - Invalid transition: time_off_id=%d, action=%s, error=%v",
				timeOffID, req.Action, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, timeoffService.ErrInvalidInput):
			h.logger.Warn("POST /time-off/{id}/resolve - Invalid input: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /time-off/{id}/resolve - Failed to resolve time off: time_off_id=%d, error=%v",
				timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-off/{id}/resolve - Time off resolved: time_off_id=%d, action=%s, resolved_by=%d",
		timeOffID, req.Action, resolvedByID)
	handlers.RespondJSON(w, http.StatusOK, timeOff)
}
