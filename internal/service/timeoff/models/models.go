package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

var (
	// ErrInvalidLeaveType возвращается при некорректном типе отпуска
	ErrInvalidLeaveType = errors.New("invalid leave type")

	// ErrInvalidStatus возвращается при некорректном статусе заявки
	ErrInvalidStatus = errors.New("invalid time off status")
)

// Request модели

// CreateTimeOffRequest запрос на создание заявки на отпуск
type CreateTimeOffRequest struct {
	LeaveType string  `json:"leaveType"`
	StartDate string  `json:"startDate"` // "2025-10-15"
	EndDate   string  `json:"endDate"`
	StartTime *string `json:"startTime,omitempty"` // Для частичного дня, "10:00"
	EndTime   *string `json:"endTime,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// UpdateTimeOffRequest запрос на обновление заявки.
// Указатели: nil = поле не меняется.
type UpdateTimeOffRequest struct {
	LeaveType *string `json:"leaveType,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	FullDay   *bool   `json:"fullDay,omitempty"`
	Reason    *string `json:"reason,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ResolveTimeOffRequest запрос на решение по заявке (approve/reject/cancel)
type ResolveTimeOffRequest struct {
	Action string  `json:"action"` // "approve", "reject", "cancel"
	Notes  *string `json:"notes,omitempty"`
}

// ListTimeOffRequest запрос на получение заявок
type ListTimeOffRequest struct {
	StaffID   *int64  `json:"staffId,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListTimeOffRequest) ToDomainFilter() (domain.TimeOffFilter, error) {
	filter := domain.TimeOffFilter{
		StaffID: r.StaffID,
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return filter, errors.New("invalid start date")
		}
		filter.StartDate = &startDate
	}
	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return filter, errors.New("invalid end date")
		}
		filter.EndDate = &endDate
	}
	if r.Status != nil {
		status, err := ToDomainTimeOffStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// TimeOffResponse ответ с данными заявки
type TimeOffResponse struct {
	ID        int64   `json:"id"`
	StaffID   int64   `json:"staffId"`
	LeaveType string  `json:"leaveType"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	IsFullDay bool    `json:"isFullDay"`
	Reason    string  `json:"reason,omitempty"`
	Status    string  `json:"status"`

	DurationDays int `json:"durationDays"`

	ApprovedByID *int64  `json:"approvedById,omitempty"`
	ApprovedAt   *string `json:"approvedAt,omitempty"` // ISO 8601
	Notes        string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeOffListResponse ответ со списком заявок
type TimeOffListResponse struct {
	TimeOff []TimeOffResponse `json:"timeOff"`
}

// Методы конвертации

// FromDomainTimeOff конвертирует domain модель в DTO
func FromDomainTimeOff(t *domain.TimeOff) *TimeOffResponse {
	if t == nil {
		return nil
	}

	resp := &TimeOffResponse{
		ID:           t.ID,
		StaffID:      t.StaffID,
		LeaveType:    string(t.LeaveType),
		StartDate:    t.StartDate.Format(domain.DateFormat),
		EndDate:      t.EndDate.Format(domain.DateFormat),
		IsFullDay:    t.IsFullDay,
		Reason:       t.Reason,
		Status:       string(t.Status),
		DurationDays: t.DurationDays(),
		ApprovedByID: t.ApprovedByID,
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	if t.StartTime != nil {
		startTime := t.StartTime.String()
		resp.StartTime = &startTime
	}
	if t.EndTime != nil {
		endTime := t.EndTime.String()
		resp.EndTime = &endTime
	}
	if t.ApprovedAt != nil {
		approvedAt := t.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}

	return resp
}

// FromDomainTimeOffList конвертирует список domain моделей в DTO
func FromDomainTimeOffList(entries []*domain.TimeOff) *TimeOffListResponse {
	if entries == nil {
		return &TimeOffListResponse{
			TimeOff: []TimeOffResponse{},
		}
	}

	resp := &TimeOffListResponse{
		TimeOff: make([]TimeOffResponse, len(entries)),
	}

	for i, entry := range entries {
		if entryResp := FromDomainTimeOff(entry); entryResp != nil {
			resp.TimeOff[i] = *entryResp
		}
	}

	return resp
}

// ToDomainLeaveType конвертирует строку в domain.LeaveType с валидацией
func ToDomainLeaveType(leaveType string) (domain.LeaveType, error) {
	lt := domain.LeaveType(leaveType)

	for _, valid := range domain.ValidLeaveTypes {
		if lt == valid {
			return lt, nil
		}
	}

	return "", ErrInvalidLeaveType
}

// ToDomainTimeOffStatus конвертирует строку в domain.TimeOffStatus с валидацией
func ToDomainTimeOffStatus(status string) (domain.TimeOffStatus, error) {
	s := domain.TimeOffStatus(status)

	validStatuses := []domain.TimeOffStatus{
		domain.TimeOffStatusPending,
		domain.TimeOffStatusApproved,
		domain.TimeOffStatusRejected,
		domain.TimeOffStatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ParseOptionalTime парсит опциональное время "HH:MM"
func ParseOptionalTime(value *string) (*types.TimeString, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := types.NewTimeStringFromString(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
