package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/dokterku/presensi-backend-go/internal/config"
	"github.com/dokterku/presensi-backend-go/internal/domain/schedule"
)

type ShiftWindowResolverImpl struct {
	assignmentRepo schedule.ScheduleAssignmentRepository
	cfg            config.AttendanceConfig
	loc            *time.Location
}

func NewShiftWindowResolver(
	assignmentRepo schedule.ScheduleAssignmentRepository,
	cfg config.AttendanceConfig,
	loc *time.Location,
) schedule.ShiftWindowResolver {
	return &ShiftWindowResolverImpl{
		assignmentRepo: assignmentRepo,
		cfg:            cfg,
		loc:            loc,
	}
}

// ResolveWindow implements schedule.ShiftWindowResolver.
func (r *ShiftWindowResolverImpl) ResolveWindow(ctx context.Context, employeeID string, date time.Time) (schedule.ShiftWindow, error) {
	assignments, err := r.assignmentRepo.GetActiveByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return schedule.ShiftWindow{}, fmt.Errorf("failed to get schedule assignments: %w", err)
	}

	if len(assignments) == 0 {
		return schedule.ShiftWindow{}, schedule.ErrNoActiveSchedule
	}

	// One active assignment per employee per date is the expectation, but the
	// data does not guarantee it. Pick the earliest-starting shift so the
	// choice is deterministic.
	chosen := assignments[0]
	for _, a := range assignments[1:] {
		if minuteOfDay(a.ShiftTemplate.StartTime) < minuteOfDay(chosen.ShiftTemplate.StartTime) {
			chosen = a
		}
	}

	return r.buildWindow(chosen, date), nil
}

func (r *ShiftWindowResolverImpl) buildWindow(assignment schedule.ScheduleAssignment, date time.Time) schedule.ShiftWindow {
	tpl := assignment.ShiftTemplate

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		tpl.StartTime.Hour(), tpl.StartTime.Minute(), 0, 0,
		r.loc,
	)
	end := time.Date(
		date.Year(), date.Month(), date.Day(),
		tpl.EndTime.Hour(), tpl.EndTime.Minute(), 0, 0,
		r.loc,
	)

	// Shift malam: jam pulang jatuh di hari berikutnya.
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	toleranceBefore := time.Duration(r.cfg.DefaultToleranceBeforeMinutes) * time.Minute
	if tpl.ToleranceBeforeMinutes != nil {
		toleranceBefore = time.Duration(*tpl.ToleranceBeforeMinutes) * time.Minute
	}

	toleranceAfter := time.Duration(r.cfg.DefaultToleranceAfterMinutes) * time.Minute
	if tpl.ToleranceAfterMinutes != nil {
		toleranceAfter = time.Duration(*tpl.ToleranceAfterMinutes) * time.Minute
	}

	return schedule.ShiftWindow{
		AssignmentID:    assignment.ID,
		ShiftName:       tpl.Name,
		WorkLocationID:  assignment.WorkLocationID,
		Start:           start,
		End:             end,
		ToleranceBefore: toleranceBefore,
		ToleranceAfter:  toleranceAfter,
	}
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
