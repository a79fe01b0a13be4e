package list_staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	staffService "github.com/m04kA/SMC-StaffService/internal/service/staff"
	"github.com/m04kA/SMC-StaffService/internal/service/staff/models"
)

const (
	msgInvalidStatus   = "некорректный статус"
	msgInvalidBookable = "некорректное значение bookable"
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

// Handle GET /api/v1/staff?query=&role=&status=&bookable=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListStaffRequest{
		Query: query.Get("query"),
	}

	if role := query.Get("role"); role != "" {
		req.Role = &role
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if bookableStr := query.Get("bookable"); bookableStr != "" {
		bookable, err := strconv.ParseBool(bookableStr)
		if err != nil {
			h.logger.Warn("GET /staff - Invalid bookable value: %q", bookableStr)
			handlers.RespondBadRequest(w, msgInvalidBookable)
			return
		}
		req.IsBookable = &bookable
	}

	staff, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrInvalidInput):
			h.logger.Warn("GET /staff - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /staff - Failed to list staff: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, staff)
}
