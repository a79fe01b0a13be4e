package get_available_staff

import (
	"github.com/m04kA/SMC-StaffService/internal/domain"
	getAvailableStaff "github.com/m04kA/SMC-StaffService/internal/usecase/get_available_staff"
)

// AvailableStaffResponse HTTP response model
type AvailableStaffResponse struct {
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	ServiceID *int64           `json:"serviceId,omitempty"`
	Staff     []AvailableStaff `json:"staff"`
}

// AvailableStaff модель доступного сотрудника
type AvailableStaff struct {
	StaffID  int64  `json:"staffId"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableStaff.Response) *AvailableStaffResponse {
	staff := make([]AvailableStaff, len(resp.Staff))
	for i, candidate := range resp.Staff {
		staff[i] = AvailableStaff{
			StaffID:  candidate.StaffID,
			FullName: candidate.FullName,
			Role:     candidate.Role,
		}
	}

	return &AvailableStaffResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Time:      resp.Time.String(),
		ServiceID: resp.ServiceID,
		Staff:     staff,
	}
}
