package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
)

// AttendanceJobs closes out each working day by marking employees without
// a record as absent.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		loc:               loc,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("mark_absent_employees", j.loc, 0, 30, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees marks yesterday (local time) absent for active
// employees who never clocked in and were not marked manually.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := j.now().In(j.loc).AddDate(0, 0, -1)

	slog.Info("Cron: Starting mark absent employees job", "date", yesterday.Format(time.DateOnly))

	count, err := j.attendanceService.MarkAbsent(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absent employees: %w", err)
	}

	slog.Info("Cron: Marked absent employees", "count", count)
	return nil
}
