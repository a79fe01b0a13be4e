package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// filterPastSlots отбрасывает слоты, начинающиеся раньше чем через
// minAdvanceHours от текущего момента. Для дат в будущем список не меняется.
func filterPastSlots(slots []types.TimeString, date time.Time, now time.Time, minAdvanceHours int) []types.TimeString {
	if !domain.DateOnly(date).Equal(domain.DateOnly(now)) {
		return slots
	}

	cutoffAt := now.Add(time.Duration(minAdvanceHours) * time.Hour)
	if !domain.DateOnly(cutoffAt).Equal(domain.DateOnly(now)) {
		// Порог уехал на следующий день - сегодня уже ничего не забронировать
		return []types.TimeString{}
	}
	cutoff := types.NewTimeString(cutoffAt)

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot.IsBefore(cutoff) {
			continue
		}
		filtered = append(filtered, slot)
	}
	return filtered
}
