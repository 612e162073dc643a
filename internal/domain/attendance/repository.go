package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The store
// must enforce at most one record per (employee_id, date); Create surfaces a
// constraint hit as ErrDuplicateAttendance so concurrent check-ins cannot
// both succeed.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	Update(ctx context.Context, att Attendance) error

	// GetByEmployeeAndDate returns nil (not an error) when the employee has
	// no record for the date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	ListByEmployee(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployeeAndMonth returns every record whose Date falls inside the
	// month, for recap aggregation.
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) ([]Attendance, error)

	// FlagStaleOpenSessions marks open records whose check-in is older than
	// the cutoff and returns how many were flagged.
	FlagStaleOpenSessions(ctx context.Context, olderThan time.Duration) (int64, error)

	// FlagOverlongDurations marks closed records whose stored duration
	// exceeds maxMinutes and returns how many were flagged.
	FlagOverlongDurations(ctx context.Context, maxMinutes int) (int64, error)
}
