package models

import (
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// Request модели

// CreateScheduleRequest запрос на создание расписания
type CreateScheduleRequest struct {
	Name           string  `json:"name"`
	IsDefault      bool    `json:"isDefault"`
	EffectiveFrom  *string `json:"effectiveFrom,omitempty"`  // "2025-10-15"
	EffectiveUntil *string `json:"effectiveUntil,omitempty"` // "2025-12-31"
}

// UpdateScheduleRequest запрос на частичное обновление расписания.
// Указатели: nil = поле не меняется. ClearEffectiveFrom/Until снимают границу.
type UpdateScheduleRequest struct {
	Name                *string `json:"name,omitempty"`
	IsActive            *bool   `json:"isActive,omitempty"`
	EffectiveFrom       *string `json:"effectiveFrom,omitempty"`
	EffectiveUntil      *string `json:"effectiveUntil,omitempty"`
	ClearEffectiveFrom  bool    `json:"clearEffectiveFrom,omitempty"`
	ClearEffectiveUntil bool    `json:"clearEffectiveUntil,omitempty"`
}

// WorkingHoursEntry рабочие часы одного дня недели
type WorkingHoursEntry struct {
	DayOfWeek  int     `json:"dayOfWeek"` // 0=Monday .. 6=Sunday
	StartTime  string  `json:"startTime"` // "09:00"
	EndTime    string  `json:"endTime"`   // "18:00"
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	IsWorking  bool    `json:"isWorking"`
}

// SaveWorkingHoursRequest запрос на полную замену рабочих часов расписания
type SaveWorkingHoursRequest struct {
	Hours []WorkingHoursEntry `json:"hours"`
}

// Response модели

// WorkingHoursResponse рабочие часы одного дня недели
type WorkingHoursResponse struct {
	ID         int64   `json:"id"`
	DayOfWeek  int     `json:"dayOfWeek"`
	DayName    string  `json:"dayName"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	IsWorking  bool    `json:"isWorking"`
}

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID             int64                  `json:"id"`
	StaffID        int64                  `json:"staffId"`
	Name           string                 `json:"name"`
	IsDefault      bool                   `json:"isDefault"`
	IsActive       bool                   `json:"isActive"`
	EffectiveFrom  *string                `json:"effectiveFrom,omitempty"`
	EffectiveUntil *string                `json:"effectiveUntil,omitempty"`
	WorkingHours   []WorkingHoursResponse `json:"workingHours"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// ToDomainWorkingHours конвертирует entry в domain модель
func (e *WorkingHoursEntry) ToDomainWorkingHours(scheduleID int64) *domain.WorkingHours {
	wh := &domain.WorkingHours{
		ScheduleID: scheduleID,
		DayOfWeek:  e.DayOfWeek,
		StartTime:  types.TimeString(e.StartTime),
		EndTime:    types.TimeString(e.EndTime),
		IsWorking:  e.IsWorking,
	}
	if e.BreakStart != nil {
		breakStart := types.TimeString(*e.BreakStart)
		wh.BreakStart = &breakStart
	}
	if e.BreakEnd != nil {
		breakEnd := types.TimeString(*e.BreakEnd)
		wh.BreakEnd = &breakEnd
	}
	return wh
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ID:           s.ID,
		StaffID:      s.StaffID,
		Name:         s.Name,
		IsDefault:    s.IsDefault,
		IsActive:     s.IsActive,
		WorkingHours: make([]WorkingHoursResponse, 0, len(s.WorkingHours)),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}

	if s.EffectiveFrom != nil {
		from := s.EffectiveFrom.Format(domain.DateFormat)
		resp.EffectiveFrom = &from
	}
	if s.EffectiveUntil != nil {
		until := s.EffectiveUntil.Format(domain.DateFormat)
		resp.EffectiveUntil = &until
	}

	for _, wh := range s.WorkingHours {
		resp.WorkingHours = append(resp.WorkingHours, *FromDomainWorkingHours(wh))
	}

	return resp
}

// FromDomainWorkingHours конвертирует рабочие часы в DTO
func FromDomainWorkingHours(wh *domain.WorkingHours) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		ID:        wh.ID,
		DayOfWeek: wh.DayOfWeek,
		StartTime: wh.StartTime.String(),
		EndTime:   wh.EndTime.String(),
		IsWorking: wh.IsWorking,
	}
	if wh.DayOfWeek >= 0 && wh.DayOfWeek < len(domain.WeekdayNames) {
		resp.DayName = domain.WeekdayNames[wh.DayOfWeek]
	}
	if wh.BreakStart != nil {
		breakStart := wh.BreakStart.String()
		resp.BreakStart = &breakStart
	}
	if wh.BreakEnd != nil {
		breakEnd := wh.BreakEnd.String()
		resp.BreakEnd = &breakEnd
	}
	return resp
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.Schedule) *ScheduleListResponse {
	if schedules == nil {
		return &ScheduleListResponse{
			Schedules: []ScheduleResponse{},
		}
	}

	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, len(schedules)),
	}

	for i, schedule := range schedules {
		if scheduleResp := FromDomainSchedule(schedule); scheduleResp != nil {
			resp.Schedules[i] = *scheduleResp
		}
	}

	return resp
}
