package delete_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	timeoffService "github.com/m04kA/SMC-StaffService/internal/service/timeoff"
)

const (
	msgInvalidTimeOffID = "некорректный ID заявки"
	msgTimeOffNotFound  = "заявка не найдена"
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

// Handle DELETE /api/v1/time-off/{timeOffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	timeOffID, err := strconv.ParseInt(vars["timeOffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-off/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	if err := h.service.Delete(r.Context(), timeOffID); err != nil {
		switch {
		case errors.Is(err, timeoffService.ErrTimeOffNotFound):
			h.logger.Warn("DELETE /time-off/{id} - Time off not found: time_off_id=%d", timeOffID)
			handlers.RespondNotFound(w, msgTimeOffNotFound)

		default:
			h.logger.Error("DELETE /time-off/{id} - Failed to delete time off: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /time-off/{id} - Time off deleted successfully: time_off_id=%d", timeOffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
