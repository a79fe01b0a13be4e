package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-StaffService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTime    = "время обязательно"
	msgInvalidTime    = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput   = "некорректные входные данные"
	msgStaffNotFound  = "сотрудник не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StaffID   int64  `json:"staffId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Handle GET /api/v1/staff/{staffId}/availability
// Query params: date (required, YYYY-MM-DD), time (required, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{id}/availability - Missing date: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid date format: staff_id=%d, date=%q", staffID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	timeStr := query.Get("time")
	if timeStr == "" {
		h.logger.Warn("GET /staff/{id}/availability - Missing time: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}
	timeOfDay, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid time format: staff_id=%d, time=%q", staffID, timeStr)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		StaffID: staffID,
		Date:    date,
		Time:    timeOfDay,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/availability - Staff member not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/availability - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /staff/{id}/availability - Failed to check availability: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		StaffID:   result.StaffID,
		Date:      result.Date.Format(domain.DateFormat),
		Time:      result.Time.String(),
		Available: result.Available,
	})
}
