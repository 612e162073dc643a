package schedule

import "time"

// ShiftTemplate describes a named shift ("Pagi", "Siang", "Sore", "Malam")
// by its time-of-day boundaries. Only the clock components of StartTime and
// EndTime are meaningful.
type ShiftTemplate struct {
	ID        string
	Name      string
	StartTime time.Time
	EndTime   time.Time

	// Per-template tolerance overrides in minutes. Nil falls back to the
	// organization-wide defaults from configuration.
	ToleranceBeforeMinutes *int
	ToleranceAfterMinutes  *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOvernight reports whether the shift crosses midnight, signalled by the
// end time-of-day being earlier than the start time-of-day.
func (s ShiftTemplate) IsOvernight() bool {
	startMins := s.StartTime.Hour()*60 + s.StartTime.Minute()
	endMins := s.EndTime.Hour()*60 + s.EndTime.Minute()
	return endMins < startMins
}

const StatusAktif = "Aktif"

// ScheduleAssignment is a jadwal jaga row: one employee assigned one shift at
// one work location on one date.
type ScheduleAssignment struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	ShiftTemplateID string
	WorkLocationID  string
	Status          string

	ShiftTemplate ShiftTemplate

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftWindow is a resolved shift: absolute start/end datetimes for a
// concrete date, plus the check-in tolerances around them.
type ShiftWindow struct {
	AssignmentID    string
	ShiftName       string
	WorkLocationID  string
	Start           time.Time
	End             time.Time
	ToleranceBefore time.Duration
	ToleranceAfter  time.Duration
}

// EarliestCheckin returns the opening of the permitted check-in window.
func (w ShiftWindow) EarliestCheckin() time.Time {
	return w.Start.Add(-w.ToleranceBefore)
}

// LatestCheckin returns the close of the permitted check-in window.
func (w ShiftWindow) LatestCheckin() time.Time {
	return w.End.Add(w.ToleranceAfter)
}
