package domain

import (
	"strings"
	"time"
)

// StaffStatus represents employment status of a staff member
type StaffStatus string

const (
	StaffStatusActive     StaffStatus = "active"
	StaffStatusInactive   StaffStatus = "inactive"
	StaffStatusOnLeave    StaffStatus = "on_leave"
	StaffStatusTerminated StaffStatus = "terminated"
)

// StaffMember represents an employee who can provide services and be booked
type StaffMember struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	EmployeeID string
	Role       string
	HireDate   *time.Time
	TerminationDate *time.Time
	Status     StaffStatus

	// Presentation
	Bio         string
	Specialties string

	// Booking settings
	IsBookable           bool
	CalendarColor        string
	BookingBufferMinutes int

	// Compensation
	HourlyRate     float64
	CommissionRate float64

	DisplayOrder int
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns first and last name joined
func (s *StaffMember) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// IsActive returns true if the staff member is currently employed and active
func (s *StaffMember) IsActive() bool {
	return s.Status == StaffStatusActive
}

// IsAvailableForBooking returns true if the staff member can be offered to
// clients at all. Time-based availability is checked separately.
func (s *StaffMember) IsAvailableForBooking() bool {
	return s.Status == StaffStatusActive && s.IsBookable
}

// IsTerminated returns true if the staff member has been terminated
func (s *StaffMember) IsTerminated() bool {
	return s.Status == StaffStatusTerminated
}

// SpecialtiesList returns the comma-separated specialties as a slice
func (s *StaffMember) SpecialtiesList() []string {
	if s.Specialties == "" {
		return []string{}
	}
	parts := strings.Split(s.Specialties, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// YearsOfService calculates completed years between hire date and
// termination date (or now for current employees).
func (s *StaffMember) YearsOfService(now time.Time) int {
	if s.HireDate == nil {
		return 0
	}
	end := now
	if s.TerminationDate != nil {
		end = *s.TerminationDate
	}
	days := int(end.Sub(*s.HireDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 365
}

// StaffFilter фильтр для поиска сотрудников
type StaffFilter struct {
	Query      string       // Поиск по имени, email, телефону, табельному номеру
	Role       *string      // Фильтр по роли (опционально)
	Status     *StaffStatus // Фильтр по статусу (опционально)
	IsBookable *bool        // Фильтр по доступности для записи (опционально)
}

// StaffStats агрегированная статистика по сотрудникам
type StaffStats struct {
	TotalStaff      int
	ActiveStaff     int
	InactiveStaff   int
	OnLeave         int
	Terminated      int
	BookableStaff   int
	PendingTimeOff  int
}
