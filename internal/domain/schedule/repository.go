package schedule

import (
	"context"
	"time"
)

type ScheduleAssignmentRepository interface {
	// GetActiveByEmployeeAndDate retrieves every active (status "Aktif")
	// assignment for an employee on a calendar date, shift template included.
	// Zero rows is not an error; the resolver decides what that means.
	GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]ScheduleAssignment, error)
}
