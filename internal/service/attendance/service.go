package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dokterku/presensi-backend-go/internal/config"
	"github.com/dokterku/presensi-backend-go/internal/domain/attendance"
	"github.com/dokterku/presensi-backend-go/internal/domain/schedule"
	"github.com/dokterku/presensi-backend-go/internal/domain/worklocation"
	"github.com/dokterku/presensi-backend-go/internal/pkg/database"
	"github.com/dokterku/presensi-backend-go/internal/pkg/geo"
	"github.com/dokterku/presensi-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db               *database.DB
	attendanceRepo   attendance.AttendanceRepository
	workLocationRepo worklocation.WorkLocationRepository
	resolver         schedule.ShiftWindowResolver
	cfg              config.AttendanceConfig
	loc              *time.Location

	// now and runInTx are swapped out in tests.
	now     func() time.Time
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	workLocationRepo worklocation.WorkLocationRepository,
	resolver schedule.ShiftWindowResolver,
	cfg config.AttendanceConfig,
	loc *time.Location,
) *AttendanceServiceImpl {
	s := &AttendanceServiceImpl{
		db:               db,
		attendanceRepo:   attendanceRepo,
		workLocationRepo: workLocationRepo,
		resolver:         resolver,
		cfg:              cfg,
		loc:              loc,
		now:              time.Now,
	}
	s.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, _ pgx.Tx) error {
			return fn(txCtx)
		})
	}
	return s
}

// checkinEvaluation carries everything evaluateCheckin resolved so Checkin
// can write the record without re-reading reference data.
type checkinEvaluation struct {
	result   attendance.ValidationResult
	date     time.Time
	window   schedule.ShiftWindow
	observed geo.Point
}

// ValidateCheckin implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ValidateCheckin(ctx context.Context, req attendance.CheckinRequest) (attendance.ValidationResult, error) {
	eval, err := a.evaluateCheckin(ctx, req)
	if err != nil {
		return attendance.ValidationResult{}, err
	}
	return eval.result, nil
}

// Checkin implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Checkin(ctx context.Context, req attendance.CheckinRequest) (attendance.CheckinResponse, error) {
	eval, err := a.evaluateCheckin(ctx, req)
	if err != nil {
		return attendance.CheckinResponse{}, err
	}

	if !eval.result.Valid {
		return attendance.CheckinResponse{Validation: eval.result}, nil
	}

	now := a.now().In(a.loc)
	record := attendance.Attendance{
		EmployeeID:            req.EmployeeID,
		Date:                  eval.date,
		ScheduleAssignmentID:  &eval.window.AssignmentID,
		WorkLocationID:        &eval.window.WorkLocationID,
		TimeIn:                &now,
		CheckinLatitude:       &req.Latitude,
		CheckinLongitude:      &req.Longitude,
		CheckinAccuracyMeters: &req.AccuracyMeters,
		Status:                attendance.StatusOpen,
	}

	created, err := a.attendanceRepo.Create(ctx, record)
	if err != nil {
		// A concurrent check-in won the (employee_id, date) race.
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return attendance.CheckinResponse{
				Validation: attendance.Reject(attendance.CodeAlreadyCheckedIn),
			}, nil
		}
		return attendance.CheckinResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	resp := mapAttendanceToResponse(created)
	return attendance.CheckinResponse{
		Validation: eval.result,
		Attendance: &resp,
	}, nil
}

// evaluateCheckin runs the check-in state machine. Rejection precedence is
// fixed: coordinate sanity, existing record, schedule, shift allow-list, time
// window, geofence. A scheduling problem must never surface as a location
// problem.
func (a *AttendanceServiceImpl) evaluateCheckin(ctx context.Context, req attendance.CheckinRequest) (checkinEvaluation, error) {
	observed := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	eval := checkinEvaluation{observed: observed}

	// 1. Coordinate sanity. Out-of-range values, unusable accuracy and the
	// (0,0) failure signature are all rejected before any location math.
	if !observed.InRange() || observed.IsNullIsland() ||
		req.AccuracyMeters < 0 || req.AccuracyMeters > a.cfg.MaxAccuracyMeters {
		eval.result = attendance.Reject(attendance.CodeInvalidCoordinates)
		return eval, nil
	}

	date, err := a.resolveDate(req.Date)
	if err != nil {
		return eval, err
	}
	eval.date = date

	// 2. Double check-in guard.
	existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return eval, fmt.Errorf("failed to look up attendance for date: %w", err)
	}
	if existing != nil && existing.TimeIn != nil {
		eval.result = attendance.Reject(attendance.CodeAlreadyCheckedIn)
		return eval, nil
	}

	// 3. Schedule resolution. Reported before any geofence math so a missing
	// jadwal never reads as a location failure.
	window, err := a.resolver.ResolveWindow(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, schedule.ErrNoActiveSchedule) {
			eval.result = attendance.Reject(attendance.CodeNoSchedule)
			return eval, nil
		}
		return eval, fmt.Errorf("failed to resolve shift window: %w", err)
	}
	eval.window = window

	location, err := a.workLocationRepo.GetByID(ctx, window.WorkLocationID)
	if err != nil {
		return eval, fmt.Errorf("failed to get work location: %w", err)
	}

	// 4. Deactivated location. An assignment can outlive its location; that
	// is an admin-configuration problem, not a GPS failure.
	if !location.Active {
		eval.result = attendance.Reject(attendance.CodeLocationInactive)
		return eval, nil
	}

	// 5. Shift allow-list. A blocked shift gets its own code and guidance
	// text; it must never be reported as a GPS failure.
	if !location.AllowsShift(window.ShiftName) {
		result := attendance.Reject(attendance.CodeShiftNotAllowed)
		result.ShiftName = &window.ShiftName
		eval.result = result
		return eval, nil
	}

	// 6. Time window.
	now := a.now().In(a.loc)
	if now.Before(window.EarliestCheckin()) {
		result := attendance.Reject(attendance.CodeTooEarly)
		result.ShiftName = &window.ShiftName
		eval.result = result
		return eval, nil
	}
	if now.After(window.LatestCheckin()) {
		result := attendance.Reject(attendance.CodeTooLate)
		result.ShiftName = &window.ShiftName
		eval.result = result
		return eval, nil
	}

	// 7. Geofence, last.
	center := geo.Point{Latitude: location.Latitude, Longitude: location.Longitude}
	fence := geo.CheckGeofence(observed, req.AccuracyMeters, center, location.RadiusMeters, a.cfg.AccuracyToleranceMode)
	if !fence.Inside {
		eval.result = attendance.RejectOutsideGeofence(fence.DistanceMeters)
		return eval, nil
	}

	result := attendance.ValidationResult{
		Valid:          true,
		Code:           attendance.CodeValid,
		Message:        attendance.CodeValid.Message(),
		ShiftName:      &window.ShiftName,
		DistanceMeters: &fence.DistanceMeters,
	}
	eval.result = result
	return eval, nil
}

// ValidateCheckout implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ValidateCheckout(ctx context.Context, req attendance.CheckoutRequest) (attendance.ValidationResult, error) {
	result, _, err := a.evaluateCheckout(ctx, req)
	return result, err
}

// Checkout implements attendance.AttendanceService. Check-out skips the
// geofence on purpose: staff who checked in at the clinic may leave from
// anywhere (home visits, referrals). Repeating a check-out overwrites the
// previous time_out instead of failing.
func (a *AttendanceServiceImpl) Checkout(ctx context.Context, req attendance.CheckoutRequest) (attendance.CheckinResponse, error) {
	var response attendance.CheckinResponse

	// Read and rewrite of the day's record share one transaction so the
	// nightly integrity flags cannot slip in between them.
	err := a.runInTx(ctx, func(txCtx context.Context) error {
		result, record, err := a.evaluateCheckout(txCtx, req)
		if err != nil {
			return err
		}

		if !result.Valid {
			response = attendance.CheckinResponse{Validation: result}
			return nil
		}

		now := a.now().In(a.loc)
		durationMins := int(DailyWorkHours(*record.TimeIn, now) * 60)

		record.TimeOut = &now
		record.CheckoutLatitude = &req.Latitude
		record.CheckoutLongitude = &req.Longitude
		record.WorkDurationMinutes = &durationMins
		record.Status = attendance.StatusClosed

		if err := a.attendanceRepo.Update(txCtx, *record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		resp := mapAttendanceToResponse(*record)
		response = attendance.CheckinResponse{
			Validation: result,
			Attendance: &resp,
		}
		return nil
	})
	if err != nil {
		return attendance.CheckinResponse{}, err
	}

	return response, nil
}

func (a *AttendanceServiceImpl) evaluateCheckout(ctx context.Context, req attendance.CheckoutRequest) (attendance.ValidationResult, *attendance.Attendance, error) {
	observed := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}

	// Coordinates are still sanity-checked because they get stored for audit,
	// but the geofence itself is not evaluated on check-out.
	if !observed.InRange() || observed.IsNullIsland() ||
		req.AccuracyMeters < 0 || req.AccuracyMeters > a.cfg.MaxAccuracyMeters {
		return attendance.Reject(attendance.CodeInvalidCoordinates), nil, nil
	}

	date, err := a.resolveDate(req.Date)
	if err != nil {
		return attendance.ValidationResult{}, nil, err
	}

	record, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.ValidationResult{}, nil, fmt.Errorf("failed to look up attendance for date: %w", err)
	}
	if record == nil || record.TimeIn == nil {
		return attendance.Reject(attendance.CodeNotCheckedIn), nil, nil
	}

	result := attendance.ValidationResult{
		Valid:   true,
		Code:    attendance.CodeValid,
		Message: attendance.CodeValid.Message(),
	}
	return result, record, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := a.attendanceRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapAttendanceToResponse(record))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// GetMonthlyRecap implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyRecap(ctx context.Context, employeeID string, month time.Time) (attendance.MonthlyRecap, error) {
	records, err := a.attendanceRepo.ListByEmployeeAndMonth(ctx, employeeID, month)
	if err != nil {
		return attendance.MonthlyRecap{}, fmt.Errorf("failed to list attendance for month: %w", err)
	}

	return BuildMonthlyRecap(month, records), nil
}

// resolveDate anchors a request to a working day: the explicit date field
// when given, otherwise today in the clinic timezone.
func (a *AttendanceServiceImpl) resolveDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		now := a.now().In(a.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.loc), nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", dateStr, a.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return parsed, nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var workingHours *float64
	if att.WorkDurationMinutes != nil {
		hours := float64(*att.WorkDurationMinutes) / 60.0
		workingHours = &hours
	}

	return attendance.AttendanceResponse{
		ID:             att.ID,
		EmployeeID:     att.EmployeeID,
		Date:           att.Date.Format("2006-01-02"),
		TimeIn:         timePtrToString(att.TimeIn),
		TimeOut:        timePtrToString(att.TimeOut),
		WorkLocationID: att.WorkLocationID,
		WorkingHours:   workingHours,
		Status:         att.Status,
	}
}
