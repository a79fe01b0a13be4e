package get_available_staff

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffService/internal/domain"
	getAvailableStaff "github.com/m04kA/SMC-StaffService/internal/usecase/get_available_staff"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

const (
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTime      = "время обязательно"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	useCase GetAvailableStaffUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableStaffUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/available
// Query params: date (required, YYYY-MM-DD), time (required, HH:MM), serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/available - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/available - Invalid date format: date=%q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	timeStr := query.Get("time")
	if timeStr == "" {
		h.logger.Warn("GET /staff/available - Missing time")
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}
	timeOfDay, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		h.logger.Warn("GET /staff/available - Invalid time format: time=%q", timeStr)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	req := &getAvailableStaff.Request{
		Date: date,
		Time: timeOfDay,
	}

	if serviceIDStr := query.Get("serviceId"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /staff/available - Invalid service ID: %q", serviceIDStr)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableStaff.ErrInvalidInput):
			h.logger.Warn("GET /staff/available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /staff/available - Failed to get available staff: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/available - Retrieved successfully: date=%s, time=%s, staff_count=%d",
		dateStr, timeStr, len(result.Staff))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
