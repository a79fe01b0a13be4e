package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid staff status")
)

// Request модели

// CreateStaffRequest запрос на создание сотрудника
type CreateStaffRequest struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	EmployeeID string  `json:"employeeId,omitempty"` // Пустой = сгенерировать автоматически
	Role       string  `json:"role,omitempty"`
	HireDate   *string `json:"hireDate,omitempty"` // "2025-10-15"

	Bio         string `json:"bio,omitempty"`
	Specialties string `json:"specialties,omitempty"`

	IsBookable           *bool  `json:"isBookable,omitempty"` // nil = true
	CalendarColor        string `json:"calendarColor,omitempty"`
	BookingBufferMinutes int    `json:"bookingBufferMinutes,omitempty"`

	HourlyRate     float64 `json:"hourlyRate,omitempty"`
	CommissionRate float64 `json:"commissionRate,omitempty"`

	DisplayOrder int    `json:"displayOrder,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateStaffRequest запрос на частичное обновление сотрудника.
// Указатели: nil = поле не меняется.
type UpdateStaffRequest struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Role        *string `json:"role,omitempty"`
	HireDate    *string `json:"hireDate,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Specialties *string `json:"specialties,omitempty"`

	CalendarColor        *string `json:"calendarColor,omitempty"`
	BookingBufferMinutes *int    `json:"bookingBufferMinutes,omitempty"`

	HourlyRate     *float64 `json:"hourlyRate,omitempty"`
	CommissionRate *float64 `json:"commissionRate,omitempty"`

	DisplayOrder *int    `json:"displayOrder,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// ChangeStatusRequest запрос на смену статуса сотрудника
type ChangeStatusRequest struct {
	Status          string  `json:"status"`
	TerminationDate *string `json:"terminationDate,omitempty"` // Для terminated; nil = сегодня
}

// ListStaffRequest запрос на получение списка сотрудников
type ListStaffRequest struct {
	Query      string  `json:"query,omitempty"`
	Role       *string `json:"role,omitempty"`
	Status     *string `json:"status,omitempty"`
	IsBookable *bool   `json:"isBookable,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListStaffRequest) ToDomainFilter() (domain.StaffFilter, error) {
	filter := domain.StaffFilter{
		Query:      r.Query,
		Role:       r.Role,
		IsBookable: r.IsBookable,
	}

	if r.Status != nil {
		status, err := ToDomainStaffStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// StaffResponse ответ с данными сотрудника
type StaffResponse struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	EmployeeID string  `json:"employeeId"`
	Role       string  `json:"role,omitempty"`
	HireDate   *string `json:"hireDate,omitempty"`
	TerminationDate *string `json:"terminationDate,omitempty"`
	Status     string  `json:"status"`

	Bio         string   `json:"bio,omitempty"`
	Specialties []string `json:"specialties"`

	IsBookable           bool   `json:"isBookable"`
	CalendarColor        string `json:"calendarColor,omitempty"`
	BookingBufferMinutes int    `json:"bookingBufferMinutes"`

	HourlyRate     float64 `json:"hourlyRate,omitempty"`
	CommissionRate float64 `json:"commissionRate,omitempty"`

	DisplayOrder int    `json:"displayOrder"`
	Notes        string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StaffListResponse ответ со списком сотрудников
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// StaffStatsResponse агрегированная статистика по сотрудникам
type StaffStatsResponse struct {
	TotalStaff     int `json:"totalStaff"`
	ActiveStaff    int `json:"activeStaff"`
	InactiveStaff  int `json:"inactiveStaff"`
	OnLeave        int `json:"onLeave"`
	Terminated     int `json:"terminated"`
	BookableStaff  int `json:"bookableStaff"`
	PendingTimeOff int `json:"pendingTimeOff"`
}

// Методы конвертации

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.StaffMember) *StaffResponse {
	if s == nil {
		return nil
	}

	resp := &StaffResponse{
		ID:                   s.ID,
		FirstName:            s.FirstName,
		LastName:             s.LastName,
		FullName:             s.FullName(),
		Email:                s.Email,
		Phone:                s.Phone,
		EmployeeID:           s.EmployeeID,
		Role:                 s.Role,
		Status:               string(s.Status),
		Bio:                  s.Bio,
		Specialties:          s.SpecialtiesList(),
		IsBookable:           s.IsBookable,
		CalendarColor:        s.CalendarColor,
		BookingBufferMinutes: s.BookingBufferMinutes,
		HourlyRate:           s.HourlyRate,
		CommissionRate:       s.CommissionRate,
		DisplayOrder:         s.DisplayOrder,
		Notes:                s.Notes,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}

	if s.HireDate != nil {
		hireDate := s.HireDate.Format(domain.DateFormat)
		resp.HireDate = &hireDate
	}
	if s.TerminationDate != nil {
		terminationDate := s.TerminationDate.Format(domain.DateFormat)
		resp.TerminationDate = &terminationDate
	}

	return resp
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(staff []*domain.StaffMember) *StaffListResponse {
	if staff == nil {
		return &StaffListResponse{
			Staff: []StaffResponse{},
		}
	}

	resp := &StaffListResponse{
		Staff: make([]StaffResponse, len(staff)),
	}

	for i, member := range staff {
		if memberResp := FromDomainStaff(member); memberResp != nil {
			resp.Staff[i] = *memberResp
		}
	}

	return resp
}

// FromDomainStats конвертирует domain статистику в DTO
func FromDomainStats(stats *domain.StaffStats) *StaffStatsResponse {
	if stats == nil {
		return nil
	}
	return &StaffStatsResponse{
		TotalStaff:     stats.TotalStaff,
		ActiveStaff:    stats.ActiveStaff,
		InactiveStaff:  stats.InactiveStaff,
		OnLeave:        stats.OnLeave,
		Terminated:     stats.Terminated,
		BookableStaff:  stats.BookableStaff,
		PendingTimeOff: stats.PendingTimeOff,
	}
}

// ToDomainStaffStatus конвертирует строку в domain.StaffStatus с валидацией
func ToDomainStaffStatus(status string) (domain.StaffStatus, error) {
	s := domain.StaffStatus(status)

	for _, valid := range domain.ValidStaffStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
