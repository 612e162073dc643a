package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dokterku/presensi-backend-go/internal/domain/schedule"
	"github.com/dokterku/presensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleAssignmentRepository struct {
	db *database.DB
}

func NewScheduleAssignmentRepository(db *database.DB) schedule.ScheduleAssignmentRepository {
	return &scheduleAssignmentRepository{db: db}
}

const assignmentSelect = `
	SELECT
		sa.id, sa.employee_id, sa.date, sa.shift_template_id, sa.work_location_id,
		sa.status, sa.created_at, sa.updated_at,
		st.id, st.name, st.start_time, st.end_time,
		st.tolerance_before_minutes, st.tolerance_after_minutes,
		st.created_at, st.updated_at
	FROM schedule_assignments sa
	JOIN shift_templates st ON st.id = sa.shift_template_id
`

func scanAssignment(row pgx.Row) (schedule.ScheduleAssignment, error) {
	var a schedule.ScheduleAssignment
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.ShiftTemplateID, &a.WorkLocationID,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
		&a.ShiftTemplate.ID, &a.ShiftTemplate.Name,
		&a.ShiftTemplate.StartTime, &a.ShiftTemplate.EndTime,
		&a.ShiftTemplate.ToleranceBeforeMinutes, &a.ShiftTemplate.ToleranceAfterMinutes,
		&a.ShiftTemplate.CreatedAt, &a.ShiftTemplate.UpdatedAt,
	)
	return a, err
}

// GetActiveByEmployeeAndDate implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepository) GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.ScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := assignmentSelect + `
		WHERE sa.employee_id = $1 AND sa.date = $2 AND sa.status = $3
		ORDER BY st.start_time ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date, schedule.StatusAktif)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule assignments: %w", err)
	}
	defer rows.Close()

	var result []schedule.ScheduleAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule assignment: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedule assignment rows: %w", err)
	}

	return result, nil
}
