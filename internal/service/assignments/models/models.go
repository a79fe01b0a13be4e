package models

import (
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// Request модели

// AssignmentEntry одно назначение услуги в запросе синхронизации
type AssignmentEntry struct {
	ServiceID             int64    `json:"serviceId"`
	ServiceName           string   `json:"serviceName,omitempty"` // Fallback при недоступности каталога
	CustomDurationMinutes *int     `json:"customDurationMinutes,omitempty"`
	CustomPrice           *float64 `json:"customPrice,omitempty"`
	IsPrimary             bool     `json:"isPrimary"`
}

// SyncAssignmentsRequest запрос на полную синхронизацию назначений сотрудника.
// Услуги, которых нет в списке, деактивируются; новые создаются;
// существующие обновляются и реактивируются.
type SyncAssignmentsRequest struct {
	Assignments []AssignmentEntry `json:"assignments"`
}

// Response модели

// AssignmentResponse ответ с данными назначения
type AssignmentResponse struct {
	ID                    int64    `json:"id"`
	StaffID               int64    `json:"staffId"`
	ServiceID             int64    `json:"serviceId"`
	ServiceName           string   `json:"serviceName"`
	CustomDurationMinutes *int     `json:"customDurationMinutes,omitempty"`
	CustomPrice           *float64 `json:"customPrice,omitempty"`
	IsPrimary             bool     `json:"isPrimary"`
	IsActive              bool     `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssignmentListResponse ответ со списком назначений
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}

// Методы конвертации

// FromDomainAssignment конвертирует domain модель в DTO
func FromDomainAssignment(a *domain.ServiceAssignment) *AssignmentResponse {
	if a == nil {
		return nil
	}
	return &AssignmentResponse{
		ID:                    a.ID,
		StaffID:               a.StaffID,
		ServiceID:             a.ServiceID,
		ServiceName:           a.ServiceName,
		CustomDurationMinutes: a.CustomDurationMinutes,
		CustomPrice:           a.CustomPrice,
		IsPrimary:             a.IsPrimary,
		IsActive:              a.IsActive,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

// FromDomainAssignmentList конвертирует список domain моделей в DTO
func FromDomainAssignmentList(assignments []*domain.ServiceAssignment) *AssignmentListResponse {
	if assignments == nil {
		return &AssignmentListResponse{
			Assignments: []AssignmentResponse{},
		}
	}

	resp := &AssignmentListResponse{
		Assignments: make([]AssignmentResponse, len(assignments)),
	}

	for i, assignment := range assignments {
		if assignmentResp := FromDomainAssignment(assignment); assignmentResp != nil {
			resp.Assignments[i] = *assignmentResp
		}
	}

	return resp
}
