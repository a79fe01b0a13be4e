package list_assignments

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidActive  = "некорректное значение active"
)

type Handler struct {
	service AssignmentService
	logger  Logger
}

func NewHandler(service AssignmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/services?active=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/services - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	activeOnly := true
	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		activeOnly, err = strconv.ParseBool(activeStr)
		if err != nil {
			h.logger.Warn("GET /staff/{id}/services - Invalid active value: %q", activeStr)
			handlers.RespondBadRequest(w, msgInvalidActive)
			return
		}
	}

	assignments, err := h.service.ListByStaff(r.Context(), staffID, activeOnly)
	if err != nil {
		h.logger.Error("GET /staff/{id}/services - Failed to list assignments: staff_id=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, assignments)
}
