package attendance

import (
	"testing"
	"time"

	"github.com/dokterku/presensi-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestDailyWorkHours_NormalDay(t *testing.T) {
	in := time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC)
	out := time.Date(2025, 7, 14, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, 6.5, DailyWorkHours(in, out))
}

func TestDailyWorkHours_OvernightRollsForward(t *testing.T) {
	// Both timestamps anchored to the same working day: 22:00 in, 02:00 out.
	// Naive subtraction would give -20h; the rollover makes it 4h.
	in := time.Date(2025, 7, 14, 22, 0, 0, 0, time.UTC)
	out := time.Date(2025, 7, 14, 2, 0, 0, 0, time.UTC)

	hours := DailyWorkHours(in, out)
	assert.Equal(t, 4.0, hours)
	assert.GreaterOrEqual(t, hours, 0.0, "duration must never be negative")
}

func TestDailyWorkHours_ZeroDuration(t *testing.T) {
	in := time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, DailyWorkHours(in, in))
}

func monthlyFixture(day int, inHour, outHour int, open bool) attendance.Attendance {
	date := time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 7, day, inHour, 0, 0, 0, time.UTC)
	att := attendance.Attendance{
		ID:         time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC).Format("r-2006-01-02"),
		EmployeeID: "emp-1",
		Date:       date,
		TimeIn:     &in,
		Status:     attendance.StatusOpen,
	}
	if !open {
		out := time.Date(2025, 7, day, outHour, 0, 0, 0, time.UTC)
		att.TimeOut = &out
		att.Status = attendance.StatusClosed
	}
	return att
}

func TestBuildMonthlyRecap_OpenRecordsContributeZero(t *testing.T) {
	records := []attendance.Attendance{}
	for day := 1; day <= 10; day++ {
		records = append(records, monthlyFixture(day, 8, 16, false)) // 8h each
	}
	for day := 11; day <= 15; day++ {
		records = append(records, monthlyFixture(day, 8, 0, true)) // still open
	}

	recap := BuildMonthlyRecap(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), records)

	assert.Equal(t, 80.0, recap.TotalHours)
	assert.Equal(t, 10, recap.DaysWorked)
	assert.Equal(t, 5, recap.OpenDays)
	assert.Empty(t, recap.Warnings)
}

func TestBuildMonthlyRecap_OvernightRecordCounted(t *testing.T) {
	in := time.Date(2025, 7, 14, 22, 0, 0, 0, time.UTC)
	out := time.Date(2025, 7, 14, 2, 0, 0, 0, time.UTC)
	records := []attendance.Attendance{{
		ID: "malam", EmployeeID: "emp-1",
		Date:   time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		TimeIn: &in, TimeOut: &out, Status: attendance.StatusClosed,
	}}

	recap := BuildMonthlyRecap(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), records)
	assert.Equal(t, 4.0, recap.TotalHours)
	assert.Equal(t, 1, recap.DaysWorked)
}

func TestBuildMonthlyRecap_OverlongDurationFlagged(t *testing.T) {
	in := time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC)
	out := in.Add(30 * time.Hour) // corrupt row
	records := []attendance.Attendance{
		{
			ID: "rusak", EmployeeID: "emp-1",
			Date:   time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
			TimeIn: &in, TimeOut: &out, Status: attendance.StatusClosed,
		},
		monthlyFixture(15, 8, 16, false),
	}

	recap := BuildMonthlyRecap(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), records)

	assert.Equal(t, 8.0, recap.TotalHours, "corrupt row must not be summed")
	assert.Equal(t, 1, recap.DaysWorked)
	warnings := recap.Warnings
	assert.Len(t, warnings, 1)
	assert.Equal(t, "rusak", warnings[0].AttendanceID)
	assert.Equal(t, 30.0, warnings[0].Hours)
}

func TestBuildMonthlyRecap_Empty(t *testing.T) {
	recap := BuildMonthlyRecap(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), nil)
	assert.Equal(t, 0.0, recap.TotalHours)
	assert.Equal(t, 0, recap.DaysWorked)
	assert.Equal(t, 0, recap.OpenDays)
}
