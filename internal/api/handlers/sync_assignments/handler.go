package sync_assignments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	assignmentService "github.com/m04kA/SMC-StaffService/internal/service/assignments"
	"github.com/m04kA/SMC-StaffService/internal/service/assignments/models"
)

const (
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgStaffNotFound      = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена в каталоге"
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

// Handle PUT /api/v1/staff/{staffId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/services - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req models.SyncAssignmentsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	assignments, err := h.service.Sync(r.Context(), staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, assignmentService.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/{id}/services - Staff member not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, assignmentService.ErrServiceNotFound):
			h.logger.Warn("PUT /staff/{id}/services - Service not found in catalog: staff_id=%d, error=%v", staffID, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, assignmentService.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id}/services - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /staff/{id}/services - Failed to sync assignments: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/services - Assignments synced successfully: staff_id=%d, count=%d",
		staffID, len(assignments.Assignments))
	handlers.RespondJSON(w, http.StatusOK, assignments)
}
