package get_service_staff

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
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

// StaffIDsResponse список ID сотрудников, оказывающих услугу
type StaffIDsResponse struct {
	StaffIDs []int64 `json:"staffIds"`
}

// Handle GET /api/v1/services/{serviceId}/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/staff - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	staffIDs, err := h.service.StaffIDsForService(r.Context(), serviceID)
	if err != nil {
		h.logger.Error("GET /services/{id}/staff - Failed to list staff: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	if staffIDs == nil {
		staffIDs = []int64{}
	}

	handlers.RespondJSON(w, http.StatusOK, StaffIDsResponse{StaffIDs: staffIDs})
}
