package attendance

import (
	"fmt"

	"github.com/dokterku/presensi-backend-go/internal/pkg/validator"
)

// ========================================
// VALIDATION RESULT
// ========================================

// Code is the machine-readable outcome of a check-in/check-out validation.
type Code string

const (
	CodeValid              Code = "VALID"
	CodeInvalidCoordinates Code = "INVALID_COORDINATES"
	CodeNoSchedule         Code = "NO_SCHEDULE"
	CodeLocationInactive   Code = "LOCATION_INACTIVE"
	CodeShiftNotAllowed    Code = "SHIFT_NOT_ALLOWED"
	CodeTooEarly           Code = "TOO_EARLY"
	CodeTooLate            Code = "TOO_LATE"
	CodeOutsideGeofence    Code = "OUTSIDE_GEOFENCE"
	CodeAlreadyCheckedIn   Code = "ALREADY_CHECKED_IN"
	CodeNotCheckedIn       Code = "NOT_CHECKED_IN"
)

// Message returns the user-facing guidance text for the code. Every code has
// its own message; only OUTSIDE_GEOFENCE may ever talk about location or
// distance, the rest must point the user at the actual problem.
func (c Code) Message() string {
	switch c {
	case CodeValid:
		return "Validasi berhasil."
	case CodeInvalidCoordinates:
		return "Koordinat tidak valid. Aktifkan layanan lokasi pada perangkat Anda, lalu coba lagi."
	case CodeNoSchedule:
		return "Tidak ada jadwal jaga aktif untuk tanggal ini. Hubungi admin untuk pengaturan jadwal."
	case CodeLocationInactive:
		return "Lokasi kerja untuk jadwal ini sedang dinonaktifkan. Hubungi admin untuk pembaruan lokasi presensi."
	case CodeShiftNotAllowed:
		return "Shift Anda tidak diizinkan melakukan presensi di lokasi kerja ini. Hubungi administrator untuk menyesuaikan pengaturan shift lokasi."
	case CodeTooEarly:
		return "Belum memasuki jendela waktu check-in. Silakan coba lagi mendekati jam mulai shift."
	case CodeTooLate:
		return "Jendela waktu check-in untuk shift ini sudah berakhir. Hubungi admin jika presensi tetap diperlukan."
	case CodeOutsideGeofence:
		return "Anda berada di luar radius lokasi kerja. Mendekatlah ke area klinik, lalu coba lagi."
	case CodeAlreadyCheckedIn:
		return "Anda sudah melakukan check-in untuk tanggal ini."
	case CodeNotCheckedIn:
		return "Anda belum check-in. Lakukan check-in terlebih dahulu sebelum check-out."
	default:
		return "Validasi presensi tidak dapat diproses."
	}
}

// ValidationResult is the structured outcome of one validation request. It is
// returned to the caller and never persisted.
type ValidationResult struct {
	Valid          bool     `json:"valid"`
	Code           Code     `json:"code"`
	Message        string   `json:"message"`
	ShiftName      *string  `json:"shift,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

// Reject builds an invalid result with the code's standard message.
func Reject(code Code) ValidationResult {
	return ValidationResult{Valid: false, Code: code, Message: code.Message()}
}

// RejectOutsideGeofence builds the geofence rejection with the measured
// distance folded into the guidance text.
func RejectOutsideGeofence(distanceMeters float64) ValidationResult {
	d := distanceMeters
	return ValidationResult{
		Valid:          false,
		Code:           CodeOutsideGeofence,
		Message:        fmt.Sprintf("Anda berada %.0f meter dari lokasi kerja. Mendekatlah ke area klinik, lalu coba lagi.", distanceMeters),
		DistanceMeters: &d,
	}
}

// ========================================
// REQUEST DTOs
// ========================================

// CheckinRequest is the payload for validate-checkin and checkin. EmployeeID
// comes from the authenticated token, never from the body.
type CheckinRequest struct {
	EmployeeID     string  `json:"-"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy"`
	Date           string  `json:"date,omitempty"`
}

func (r *CheckinRequest) Validate(maxAccuracyMeters float64) error {
	return validateGeoRequest(r.Latitude, r.Longitude, r.AccuracyMeters, r.Date, maxAccuracyMeters)
}

type CheckoutRequest struct {
	EmployeeID     string  `json:"-"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy"`
	Date           string  `json:"date,omitempty"`
}

func (r *CheckoutRequest) Validate(maxAccuracyMeters float64) error {
	return validateGeoRequest(r.Latitude, r.Longitude, r.AccuracyMeters, r.Date, maxAccuracyMeters)
}

func validateGeoRequest(lat, lon, accuracy float64, date string, maxAccuracyMeters float64) error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	} else if maxAccuracyMeters > 0 && accuracy > maxAccuracyMeters {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: fmt.Sprintf("accuracy must not exceed %.0f meters", maxAccuracyMeters),
		})
	}

	if date != "" {
		if _, ok := validator.IsValidDate(date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MyAttendanceFilter filters the personal attendance listing.
type MyAttendanceFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{StatusOpen, StatusClosed, StatusFlagged}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: terbuka, selesai, ditandai",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	Date           string   `json:"date"`
	TimeIn         *string  `json:"time_in"`
	TimeOut        *string  `json:"time_out"`
	WorkLocationID *string  `json:"work_location_id,omitempty"`
	WorkingHours   *float64 `json:"working_hours,omitempty"`
	Status         string   `json:"status"`
}

// CheckinResponse pairs the validation verdict with the record written when
// the verdict was VALID. Attendance is nil on rejection.
type CheckinResponse struct {
	Validation ValidationResult    `json:"validation"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// RecapWarning flags a data-integrity anomaly found while aggregating, such
// as a single-day duration above 24 hours.
type RecapWarning struct {
	AttendanceID string  `json:"attendance_id"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	Reason       string  `json:"reason"`
}

// MonthlyRecap is the monthly worked-hours aggregate. Records missing either
// timestamp are counted in OpenDays and contribute nothing to TotalHours.
type MonthlyRecap struct {
	Month      string         `json:"month"`
	TotalHours float64        `json:"total_hours"`
	DaysWorked int            `json:"days_worked"`
	OpenDays   int            `json:"open_days"`
	Warnings   []RecapWarning `json:"warnings,omitempty"`
}
