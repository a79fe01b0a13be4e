package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-StaffService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StaffID         int64    `json:"staffId"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	IntervalMinutes int      `json:"intervalMinutes"`
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		StaffID:         resp.StaffID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		IntervalMinutes: resp.IntervalMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(staffID int64, dateStr, durationStr, intervalStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		StaffID: staffID,
		Date:    date,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}
	if intervalStr != "" {
		interval, err := strconv.Atoi(intervalStr)
		if err != nil {
			return nil, err
		}
		req.IntervalMinutes = interval
	}

	return req, nil
}
