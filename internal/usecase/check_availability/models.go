package check_availability

import (
	"time"

	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// Request модель запроса на проверку доступности сотрудника
type Request struct {
	StaffID int64            // ID сотрудника
	Date    time.Time        // Дата (без времени)
	Time    types.TimeString // Время в формате "HH:MM"
}

// Response модель ответа с результатом проверки
type Response struct {
	StaffID   int64            // ID сотрудника
	Date      time.Time        // Дата проверки
	Time      types.TimeString // Время проверки
	Available bool             // Доступен ли сотрудник в этот момент
}
