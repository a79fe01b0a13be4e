package change_staff_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	staffService "github.com/m04kA/SMC-StaffService/internal/service/staff"
	"github.com/m04kA/SMC-StaffService/internal/service/staff/models"
)

const (
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус"
	msgInvalidInput       = "некорректные входные данные"
	msgNotFound           = "сотрудник не найден"
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

// Handle PATCH /api/v1/staff/{staffId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /staff/{id}/status - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req models.ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ChangeStatus(r.Context(), staffID, &req); err != nil {
		switch {
		case errors.Is(err, staffService.ErrStaffNotFound):
			h.logger.Warn("PATCH /staff/{id}/status - Staff member not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, staffService.ErrInvalidStatus):
			h.logger.Warn("PATCH /staff/{id}/status - Invalid status %q: staff_id=%d", req.Status, staffID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, staffService.ErrInvalidInput):
			h.logger.Warn("PATCH /staff/{id}/status - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /staff/{id}/status - Failed to change status: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /staff/{id}/status - Status changed successfully: staff_id=%d, status=%s",
		staffID, req.Status)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
