package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-StaffService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStaffID  = "некорректный ID сотрудника"
	msgMissingDate     = "дата обязательна"
	msgInvalidParams   = "некорректные параметры запроса, ожидается date=YYYY-MM-DD и числовые duration/interval"
	msgInvalidInput    = "некорректные входные данные"
	msgDateInPast      = "дата не может быть в прошлом"
	msgStaffNotFound   = "сотрудник не найден"
	msgStaffNotBooking = "сотрудник недоступен для записи"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/slots
// Query params: date (required, YYYY-MM-DD), duration (minutes), interval (minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{id}/slots - Missing date: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(staffID, dateStr, query.Get("duration"), query.Get("interval"))
	if err != nil {
		h.logger.Warn("GET /staff/{id}/slots - Invalid query params: staff_id=%d, error=%v", staffID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/slots - Staff member not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotBookable):
			h.logger.Warn("GET /staff/{id}/slots - Staff member not bookable: staff_id=%d", staffID)
			handlers.RespondConflict(w, msgStaffNotBooking)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /staff/{id}/slots - Date in the past: staff_id=%d, date=%s", staffID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/slots - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /staff/{id}/slots - Failed to get slots: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/slots - Slots retrieved successfully: staff_id=%d, date=%s, slots_count=%d",
		staffID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
