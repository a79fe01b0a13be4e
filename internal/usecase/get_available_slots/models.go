package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// Request модель запроса на получение доступных слотов сотрудника
type Request struct {
	StaffID         int64     // ID сотрудника
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность слота, 0 = из конфигурации
	IntervalMinutes int       // Шаг между слотами, 0 = из конфигурации
}

// Response модель ответа со списком доступных слотов
type Response struct {
	StaffID         int64              // ID сотрудника
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Фактическая длительность слота
	IntervalMinutes int                // Фактический шаг между слотами
	Slots           []types.TimeString // Времена начала доступных слотов по возрастанию
}
