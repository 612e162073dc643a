package attendance

import "time"

// Attendance statuses. A record is "terbuka" from check-in until check-out
// closes it; the integrity cron moves suspicious rows to "ditandai" for
// admin review.
const (
	StatusOpen    = "terbuka"
	StatusClosed  = "selesai"
	StatusFlagged = "ditandai"
)

type Attendance struct {
	ID         string
	EmployeeID string

	// Date is the working day the record belongs to, not a timestamp. For an
	// overnight shift the check-out may land on the following calendar day
	// while Date stays on the day the shift started.
	Date time.Time

	ScheduleAssignmentID *string
	WorkLocationID       *string

	TimeIn  *time.Time
	TimeOut *time.Time

	CheckinLatitude       *float64
	CheckinLongitude      *float64
	CheckinAccuracyMeters *float64
	CheckoutLatitude      *float64
	CheckoutLongitude     *float64

	WorkDurationMinutes *int
	Status              string

	CreatedAt time.Time
	UpdatedAt time.Time
}
