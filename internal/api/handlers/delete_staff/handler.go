package delete_staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	staffService "github.com/m04kA/SMC-StaffService/internal/service/staff"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgNotFound       = "сотрудник не найден"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/staff/{staffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /staff/{id} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	if err := h.service.Delete(r.Context(), staffID); err != nil {
		switch {
		case errors.Is(err, staffService.ErrStaffNotFound):
			h.logger.Warn("DELETE /staff/{id} - Staff member not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /staff/{id} - Failed to delete staff member: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff/{id} - Staff member deleted successfully: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
