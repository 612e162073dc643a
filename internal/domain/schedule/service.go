package schedule

import (
	"context"
	"time"
)

// ShiftWindowResolver turns a jadwal jaga lookup into an absolute shift
// window for a concrete date.
type ShiftWindowResolver interface {
	// ResolveWindow finds the active assignment for (employeeID, date) and
	// anchors its shift times to that date. Overnight shifts end on the next
	// calendar day. Returns ErrNoActiveSchedule when nothing is scheduled.
	ResolveWindow(ctx context.Context, employeeID string, date time.Time) (ShiftWindow, error)
}
