package get_available_staff

import (
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// Request модель запроса на подбор доступных сотрудников
type Request struct {
	Date      time.Time        // Дата (без времени)
	Time      types.TimeString // Время в формате "HH:MM"
	ServiceID *int64           // Ограничить сотрудниками с активным назначением услуги (опционально)
}

// Candidate доступный сотрудник
type Candidate struct {
	StaffID      int64  // ID сотрудника
	FullName     string // Полное имя
	Role         string // Роль
	DisplayOrder int    // Порядок отображения
}

// Response модель ответа со списком доступных сотрудников
type Response struct {
	Date      time.Time        // Дата запроса
	Time      types.TimeString // Время запроса
	ServiceID *int64           // Фильтр по услуге, если был задан
	Staff     []Candidate      // Доступные сотрудники
}

// newCandidate собирает кандидата из domain модели
func newCandidate(member *domain.StaffMember) Candidate {
	return Candidate{
		StaffID:      member.ID,
		FullName:     member.FullName(),
		Role:         member.Role,
		DisplayOrder: member.DisplayOrder,
	}
}
