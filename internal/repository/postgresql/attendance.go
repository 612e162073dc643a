package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dokterku/presensi-backend-go/internal/domain/attendance"
	"github.com/dokterku/presensi-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, schedule_assignment_id, work_location_id,
	time_in, time_out,
	checkin_latitude, checkin_longitude, checkin_accuracy_meters,
	checkout_latitude, checkout_longitude,
	work_duration_minutes, status, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ScheduleAssignmentID, &att.WorkLocationID,
		&att.TimeIn, &att.TimeOut,
		&att.CheckinLatitude, &att.CheckinLongitude, &att.CheckinAccuracyMeters,
		&att.CheckoutLatitude, &att.CheckoutLongitude,
		&att.WorkDurationMinutes, &att.Status, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository. The unique index on
// (employee_id, date) is the serialization point for concurrent check-ins:
// the loser of the race gets ErrDuplicateAttendance instead of a second row.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, schedule_assignment_id, work_location_id,
			time_in, checkin_latitude, checkin_longitude, checkin_accuracy_meters,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	att.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.ScheduleAssignmentID,
		att.WorkLocationID,
		att.TimeIn,
		att.CheckinLatitude,
		att.CheckinLongitude,
		att.CheckinAccuracyMeters,
		att.Status,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			time_out = $2,
			checkout_latitude = $3,
			checkout_longitude = $4,
			work_duration_minutes = $5,
			status = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.TimeOut,
		att.CheckoutLatitude,
		att.CheckoutLongitude,
		att.WorkDurationMinutes,
		att.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	args := []interface{}{employeeID}
	conditions = append(conditions, "employee_id = $1")

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return result, total, nil
}

// ListByEmployeeAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances for month: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return result, nil
}

// FlagStaleOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) FlagStaleOpenSessions(ctx context.Context, olderThan time.Duration) (int64, error) {
	q := GetQuerier(ctx, a.db)

	cutoff := time.Now().Add(-olderThan)
	query := `
		UPDATE attendances
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND time_out IS NULL AND time_in < $3
	`

	tag, err := q.Exec(ctx, query, attendance.StatusFlagged, attendance.StatusOpen, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to flag stale open sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}

// FlagOverlongDurations implements attendance.AttendanceRepository.
func (a *attendanceRepository) FlagOverlongDurations(ctx context.Context, maxMinutes int) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND work_duration_minutes > $3
	`

	tag, err := q.Exec(ctx, query, attendance.StatusFlagged, attendance.StatusClosed, maxMinutes)
	if err != nil {
		return 0, fmt.Errorf("failed to flag overlong durations: %w", err)
	}

	return tag.RowsAffected(), nil
}
