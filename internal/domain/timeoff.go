package domain

import (
	"time"

	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// TimeOffStatus represents the approval state of a time off request
type TimeOffStatus string

const (
	TimeOffStatusPending   TimeOffStatus = "pending"
	TimeOffStatusApproved  TimeOffStatus = "approved"
	TimeOffStatusRejected  TimeOffStatus = "rejected"
	TimeOffStatusCancelled TimeOffStatus = "cancelled"
)

// LeaveType classifies a time off request
type LeaveType string

const (
	LeaveTypeVacation LeaveType = "vacation"
	LeaveTypeSick     LeaveType = "sick"
	LeaveTypePersonal LeaveType = "personal"
	LeaveTypeTraining LeaveType = "training"
	LeaveTypeOther    LeaveType = "other"
)

// TimeOff represents vacation / leave for a staff member.
// Date bounds are inclusive. A partial-day entry carries StartTime/EndTime
// and IsFullDay=false.
type TimeOff struct {
	ID        int64
	StaffID   int64
	LeaveType LeaveType
	StartDate time.Time
	EndDate   time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	IsFullDay bool
	Reason    string
	Status    TimeOffStatus

	ApprovedByID *int64
	ApprovedAt   *time.Time
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if this entry blocks availability.
// Pending requests block as well as approved ones, so that a slot offered to
// a client cannot collide with leave that is about to be approved.
func (t *TimeOff) IsBlocking() bool {
	return t.Status == TimeOffStatusPending || t.Status == TimeOffStatusApproved
}

// CoversDate returns true if the inclusive date range contains the date
func (t *TimeOff) CoversDate(date time.Time) bool {
	day := DateOnly(date)
	return !day.Before(DateOnly(t.StartDate)) && !day.After(DateOnly(t.EndDate))
}

// ConflictsWith returns true if this entry is blocking and its date range
// overlaps [startDate, endDate].
func (t *TimeOff) ConflictsWith(startDate, endDate time.Time) bool {
	if !t.IsBlocking() {
		return false
	}
	return !(DateOnly(endDate).Before(DateOnly(t.StartDate)) ||
		DateOnly(startDate).After(DateOnly(t.EndDate)))
}

// DurationDays returns the inclusive number of days covered
func (t *TimeOff) DurationDays() int {
	return int(DateOnly(t.EndDate).Sub(DateOnly(t.StartDate)).Hours()/24) + 1
}

// TimeOffFilter фильтр для выборки заявок на отпуск
type TimeOffFilter struct {
	StaffID   *int64         // Фильтр по сотруднику (опционально)
	StartDate *time.Time     // Заявки, пересекающиеся с периодом (опционально)
	EndDate   *time.Time     //
	Status    *TimeOffStatus // Фильтр по статусу (опционально)
}
