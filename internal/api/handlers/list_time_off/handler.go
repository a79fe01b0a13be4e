package list_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	timeoffService "github.com/m04kA/SMC-StaffService/internal/service/timeoff"
	"github.com/m04kA/SMC-StaffService/internal/service/timeoff/models"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidFilter  = "некорректные параметры фильтра"
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

// Handle GET /api/v1/time-off?staffId=&startDate=&endDate=&status=
// и GET /api/v1/staff/{staffId}/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListTimeOffRequest{}

	// staffId может прийти из пути или из query
	if staffIDStr, ok := mux.Vars(r)["staffId"]; ok {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /time-off - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	} else if staffIDStr := query.Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /time-off - Invalid staff ID: %q", staffIDStr)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	if startDate := query.Get("startDate"); startDate != "" {
		req.StartDate = &startDate
	}
	if endDate := query.Get("endDate"); endDate != "" {
		req.EndDate = &endDate
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	timeOff, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, timeoffService.ErrInvalidInput):
			h.logger.Warn("GET /time-off - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /time-off - Failed to list time off: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, timeOff)
}
