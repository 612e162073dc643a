package response

import (
	"errors"
	"net/http"

	"github.com/dokterku/presensi-backend-go/internal/domain/attendance"
	"github.com/dokterku/presensi-backend-go/internal/domain/auth"
	"github.com/dokterku/presensi-backend-go/internal/domain/user"
	"github.com/dokterku/presensi-backend-go/internal/domain/worklocation"
	"github.com/dokterku/presensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Business validation
// outcomes (outside geofence, no schedule, ...) never reach here; they ride
// inside a 200 envelope as ValidationResult codes.
func HandleError(w http.ResponseWriter, err error) {
	// Malformed or out-of-domain request fields
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, "Attendance record already exists for this date")

	// Reference data errors
	case errors.Is(err, worklocation.ErrWorkLocationNotFound):
		NotFound(w, "Work location not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
