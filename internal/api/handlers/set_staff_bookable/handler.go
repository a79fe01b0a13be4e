package set_staff_bookable

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	staffService "github.com/m04kA/SMC-StaffService/internal/service/staff"
)

const (
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "сотрудник не найден"
)

// SetBookableRequest HTTP request model
type SetBookableRequest struct {
	IsBookable bool `json:"isBookable"`
}

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

// Handle PATCH /api/v1/staff/{staffId}/bookable
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /staff/{id}/bookable - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req SetBookableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff/{id}/bookable - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetBookable(r.Context(), staffID, req.IsBookable); err != nil {
		switch {
		case errors.Is(err, staffService.ErrStaffNotFound):
			h.logger.Warn("PATCH /staff/{id}/bookable - Staff member not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /staff/{id}/bookable - Failed to set bookable: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /staff/{id}/bookable - Bookable flag updated: staff_id=%d, is_bookable=%v",
		staffID, req.IsBookable)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
