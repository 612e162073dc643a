package attendance

import "errors"

// Attendance domain errors. Business rejections (outside geofence, wrong
// shift, ...) are ValidationResult codes, not errors; these sentinels cover
// the storage-level failures around them.
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrDuplicateAttendance surfaces when the unique (employee_id, date)
	// constraint stops a concurrent double check-in.
	ErrDuplicateAttendance = errors.New("attendance record already exists for this date")
)
