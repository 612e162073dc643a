package attendance

import (
	"context"
	"time"
)

// AttendanceService is the validation engine plus the operations built on top
// of it. Employee identity is always an explicit parameter or request field;
// the engine never reads ambient auth state.
type AttendanceService interface {
	// ValidateCheckin runs the full check-in validation without writing
	// anything. Business rejections come back as an invalid result, not an
	// error; errors are reserved for storage and infrastructure failures.
	ValidateCheckin(ctx context.Context, req CheckinRequest) (ValidationResult, error)

	// Checkin validates and, on a VALID verdict, creates the attendance
	// record for the day.
	Checkin(ctx context.Context, req CheckinRequest) (CheckinResponse, error)

	// ValidateCheckout runs the check-out validation. Geofence is
	// deliberately not part of it: once checked in, check-out is permitted
	// from anywhere.
	ValidateCheckout(ctx context.Context, req CheckoutRequest) (ValidationResult, error)

	// Checkout validates and closes the open record. Repeating a check-out
	// updates the existing record rather than failing.
	Checkout(ctx context.Context, req CheckoutRequest) (CheckinResponse, error)

	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// GetMonthlyRecap aggregates worked hours for the month containing the
	// given time, skipping records that are still open.
	GetMonthlyRecap(ctx context.Context, employeeID string, month time.Time) (MonthlyRecap, error)
}
