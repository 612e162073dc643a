package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dokterku/presensi-backend-go/internal/domain/attendance"
)

// IntegrityJobs flags attendance records that admin staff should review:
// sessions never checked out and durations that cannot be real.
type IntegrityJobs struct {
	attendanceRepo attendance.AttendanceRepository
	loc            *time.Location
}

func NewIntegrityJobs(attendanceRepo attendance.AttendanceRepository, loc *time.Location) *IntegrityJobs {
	return &IntegrityJobs{
		attendanceRepo: attendanceRepo,
		loc:            loc,
	}
}

func (j *IntegrityJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("flag_stale_open_sessions", 1*time.Hour, j.FlagStaleOpenSessions)
	scheduler.AddJob("flag_overlong_durations", 1*time.Hour, j.FlagOverlongDurations)
}

// FlagStaleOpenSessions marks open records whose check-in is more than a day
// old. The engine never auto-fills a check-out time; it only flags so that
// admin staff correct the record by hand.
func (j *IntegrityJobs) FlagStaleOpenSessions(ctx context.Context) error {
	// Only run at local midnight (00:00-00:59)
	if time.Now().In(j.loc).Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting flag stale open sessions job")

	count, err := j.attendanceRepo.FlagStaleOpenSessions(ctx, 24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to flag stale open sessions: %w", err)
	}

	slog.Info("Cron: Flagged stale open sessions", "count", count)
	return nil
}

// FlagOverlongDurations marks closed records whose stored duration exceeds 24
// hours. These slip in when an old open record gets closed days later.
func (j *IntegrityJobs) FlagOverlongDurations(ctx context.Context) error {
	if time.Now().In(j.loc).Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting flag overlong durations job")

	count, err := j.attendanceRepo.FlagOverlongDurations(ctx, 24*60)
	if err != nil {
		return fmt.Errorf("failed to flag overlong durations: %w", err)
	}

	slog.Info("Cron: Flagged overlong durations", "count", count)
	return nil
}
