package attendance

import (
	"time"

	"github.com/dokterku/presensi-backend-go/internal/domain/attendance"
)

// maxDailyMinutes is the data-integrity ceiling for a single day's duration.
// Anything above it is flagged, never silently summed.
const maxDailyMinutes = 24 * 60

// DailyWorkHours returns the worked hours between check-in and check-out.
// A check-out timestamp earlier than the check-in means the shift crossed
// midnight while both were anchored to the same working day, so the check-out
// rolls forward 24 hours. The result is never negative.
func DailyWorkHours(timeIn, timeOut time.Time) float64 {
	if timeOut.Before(timeIn) {
		timeOut = timeOut.Add(24 * time.Hour)
	}
	return timeOut.Sub(timeIn).Hours()
}

// BuildMonthlyRecap aggregates a month of attendance records. Only records
// with both timestamps contribute hours; still-open records are counted but
// add zero. Durations above 24h land in Warnings and are excluded from the
// total so one corrupt row cannot poison a monthly figure.
func BuildMonthlyRecap(month time.Time, records []attendance.Attendance) attendance.MonthlyRecap {
	recap := attendance.MonthlyRecap{
		Month: month.Format("2006-01"),
	}

	for _, record := range records {
		if record.TimeIn == nil || record.TimeOut == nil {
			if record.TimeIn != nil {
				recap.OpenDays++
			}
			continue
		}

		hours := DailyWorkHours(*record.TimeIn, *record.TimeOut)
		if hours*60 > maxDailyMinutes {
			recap.Warnings = append(recap.Warnings, attendance.RecapWarning{
				AttendanceID: record.ID,
				Date:         record.Date.Format("2006-01-02"),
				Hours:        hours,
				Reason:       "durasi kerja harian melebihi 24 jam, perlu peninjauan admin",
			})
			continue
		}

		recap.TotalHours += hours
		recap.DaysWorked++
	}

	return recap
}
