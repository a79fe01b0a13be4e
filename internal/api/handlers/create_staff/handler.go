package create_staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	staffService "github.com/m04kA/SMC-StaffService/internal/service/staff"
	"github.com/m04kA/SMC-StaffService/internal/service/staff/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные входные данные"
	msgDuplicateEmployeeID = "табельный номер уже используется"
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

// Handle POST /api/v1/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	staff, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrDuplicateEmployeeID):
			h.logger.Warn("POST /staff - Duplicate employee id: %s", req.EmployeeID)
			handlers.RespondConflict(w, msgDuplicateEmployeeID)

		case errors.Is(err, staffService.ErrInvalidInput):
			h.logger.Warn("POST /staff - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /staff - Failed to create staff member: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff - Staff member created successfully: staff_id=%d, employee_id=%s",
		staff.ID, staff.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, staff)
}
