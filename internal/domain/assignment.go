package domain

import "time"

// ServiceAssignment links a staff member to a service from the services
// module. Duration and price overrides are optional; the service name is
// cached locally for display.
type ServiceAssignment struct {
	ID                    int64
	StaffID               int64
	ServiceID             int64
	ServiceName           string
	CustomDurationMinutes *int
	CustomPrice           *float64
	IsPrimary             bool
	IsActive              bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
