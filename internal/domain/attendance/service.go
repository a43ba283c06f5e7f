package attendance

import (
	"context"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/export"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn records today's arrival for the authenticated employee
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes today's record and computes hours worked
	ClockOut(ctx context.Context) (AttendanceResponse, error)

	// GetToday returns today's record for the authenticated employee
	GetToday(ctx context.Context) (AttendanceResponse, error)

	// GetBoard merges one day's records with the active roster (manager+)
	GetBoard(ctx context.Context, date string) (BoardResponse, error)

	// MarkManual overrides the status of an employee-day (manager+)
	MarkManual(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// GetEmployeeHistory returns recent records of one employee (manager+)
	GetEmployeeHistory(ctx context.Context, employeeID string, limit int) (HistoryResponse, error)

	// ExportBoardCSV renders the day board as CSV (manager+)
	ExportBoardCSV(ctx context.Context, date string) (export.File, error)

	// MarkAbsent writes absent records for active employees with no record on date
	MarkAbsent(ctx context.Context, date time.Time) (int, error)
}
