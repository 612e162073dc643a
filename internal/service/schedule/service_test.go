package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/dokterku/presensi-backend-go/internal/config"
	"github.com/dokterku/presensi-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssignmentRepo struct {
	assignments []schedule.ScheduleAssignment
	err         error
}

func (f *fakeAssignmentRepo) GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.ScheduleAssignment, error) {
	return f.assignments, f.err
}

func clockTime(hour, minute int) time.Time {
	return time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC)
}

func testResolverConfig() config.AttendanceConfig {
	return config.AttendanceConfig{
		DefaultToleranceBeforeMinutes: 30,
		DefaultToleranceAfterMinutes:  15,
	}
}

func jakarta(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func assignment(id, shiftName string, start, end time.Time) schedule.ScheduleAssignment {
	return schedule.ScheduleAssignment{
		ID:             id,
		EmployeeID:     "emp-1",
		WorkLocationID: "loc-1",
		Status:         schedule.StatusAktif,
		ShiftTemplate: schedule.ShiftTemplate{
			ID:        "tpl-" + id,
			Name:      shiftName,
			StartTime: start,
			EndTime:   end,
		},
	}
}

func TestResolveWindow_DayShift(t *testing.T) {
	loc := jakarta(t)
	repo := &fakeAssignmentRepo{assignments: []schedule.ScheduleAssignment{
		assignment("a1", "Pagi", clockTime(8, 0), clockTime(14, 0)),
	}}
	resolver := NewShiftWindowResolver(repo, testResolverConfig(), loc)

	date := time.Date(2025, 7, 14, 0, 0, 0, 0, loc)
	window, err := resolver.ResolveWindow(context.Background(), "emp-1", date)
	require.NoError(t, err)

	assert.Equal(t, "Pagi", window.ShiftName)
	assert.Equal(t, time.Date(2025, 7, 14, 8, 0, 0, 0, loc), window.Start)
	assert.Equal(t, time.Date(2025, 7, 14, 14, 0, 0, 0, loc), window.End)
	assert.Equal(t, 30*time.Minute, window.ToleranceBefore)
	assert.Equal(t, 15*time.Minute, window.ToleranceAfter)
	assert.Equal(t, time.Date(2025, 7, 14, 7, 30, 0, 0, loc), window.EarliestCheckin())
	assert.Equal(t, time.Date(2025, 7, 14, 14, 15, 0, 0, loc), window.LatestCheckin())
}

func TestResolveWindow_OvernightShiftEndsNextDay(t *testing.T) {
	loc := jakarta(t)
	repo := &fakeAssignmentRepo{assignments: []schedule.ScheduleAssignment{
		assignment("a1", "Malam", clockTime(22, 0), clockTime(6, 0)),
	}}
	resolver := NewShiftWindowResolver(repo, testResolverConfig(), loc)

	date := time.Date(2025, 7, 14, 0, 0, 0, 0, loc)
	window, err := resolver.ResolveWindow(context.Background(), "emp-1", date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 7, 14, 22, 0, 0, 0, loc), window.Start)
	assert.Equal(t, time.Date(2025, 7, 15, 6, 0, 0, 0, loc), window.End)
	assert.True(t, window.End.After(window.Start), "overnight window must never be inverted")
}

func TestResolveWindow_TemplateToleranceOverridesDefault(t *testing.T) {
	loc := jakarta(t)
	before, after := 10, 5
	a := assignment("a1", "Sore", clockTime(14, 0), clockTime(20, 0))
	a.ShiftTemplate.ToleranceBeforeMinutes = &before
	a.ShiftTemplate.ToleranceAfterMinutes = &after

	resolver := NewShiftWindowResolver(&fakeAssignmentRepo{assignments: []schedule.ScheduleAssignment{a}}, testResolverConfig(), loc)

	window, err := resolver.ResolveWindow(context.Background(), "emp-1", time.Date(2025, 7, 14, 0, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, window.ToleranceBefore)
	assert.Equal(t, 5*time.Minute, window.ToleranceAfter)
}

func TestResolveWindow_NoAssignment(t *testing.T) {
	resolver := NewShiftWindowResolver(&fakeAssignmentRepo{}, testResolverConfig(), jakarta(t))

	_, err := resolver.ResolveWindow(context.Background(), "emp-1", time.Now())
	assert.ErrorIs(t, err, schedule.ErrNoActiveSchedule)
}

func TestResolveWindow_MultipleAssignmentsPicksEarliestStart(t *testing.T) {
	loc := jakarta(t)
	repo := &fakeAssignmentRepo{assignments: []schedule.ScheduleAssignment{
		assignment("late", "Sore", clockTime(14, 0), clockTime(20, 0)),
		assignment("early", "Pagi", clockTime(8, 0), clockTime(14, 0)),
	}}
	resolver := NewShiftWindowResolver(repo, testResolverConfig(), loc)

	window, err := resolver.ResolveWindow(context.Background(), "emp-1", time.Date(2025, 7, 14, 0, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, "early", window.AssignmentID)
	assert.Equal(t, "Pagi", window.ShiftName)
}
