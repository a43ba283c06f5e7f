package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// (employee_id, date) is unique.
type AttendanceRepository interface {
	// Create inserts a new record; returns ErrAttendanceExists on a duplicate day
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when there is no record
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update overwrites clock-out, hours and status of an existing record
	Update(ctx context.Context, attendance Attendance) error

	// UpsertStatus creates the (employee, date) record or overwrites its status
	UpsertStatus(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListByDate returns every record of a single day
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListByDateRange returns records whose date lies in [from, to], both inclusive
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error)

	// ListByEmployee returns the latest records of one employee, newest first
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error)

	// BulkCreateAbsences inserts absent records, skipping days that already have one
	BulkCreateAbsences(ctx context.Context, absences []Attendance) (int, error)
}
