package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/auth"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/leave"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	settings       payroll.Settings
	tracker        *Tracker
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	settings payroll.Settings,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		settings:       settings,
		tracker:        NewTracker(),
	}
}

func (s *PayrollServiceImpl) GetReport(ctx context.Context, month string) (payroll.ReportResponse, error) {
	report, err := s.latestReport(ctx, month, "report")
	if err != nil {
		return payroll.ReportResponse{}, err
	}
	return payroll.ToReportResponse(report), nil
}

// latestReport computes the report for month in the requester's tracker
// slot. Each kind (report, csv, xlsx) has its own slot. The month is not part
// of the key: a request for another month still supersedes the running one.
func (s *PayrollServiceImpl) latestReport(ctx context.Context, month, kind string) (payroll.Report, error) {
	m, err := calendar.ParseMonth(month)
	if err != nil {
		return payroll.Report{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return payroll.Report{}, err
	}

	runCtx, end := s.tracker.Begin(ctx, claims.UserID+"/"+kind)
	report, err := s.compute(runCtx, m)
	if !end() {
		slog.Debug("payroll computation superseded", "user_id", claims.UserID, "month", m.String(), "kind", kind)
		return payroll.Report{}, payroll.ErrSuperseded
	}
	if err != nil {
		return payroll.Report{}, err
	}
	return report, nil
}

// compute fetches roster, attendance and approved leave concurrently. Any
// failure fails the whole computation.
func (s *PayrollServiceImpl) compute(ctx context.Context, month calendar.Month) (payroll.Report, error) {
	if err := s.settings.Validate(); err != nil {
		return payroll.Report{}, err
	}

	var (
		employees []employee.Employee
		records   []attendance.Attendance
		leaves    []leave.LeaveRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.GetActive(gctx)
		if err != nil {
			return fmt.Errorf("failed to load active employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByDateRange(gctx, month.FirstDay(), month.LastDay())
		if err != nil {
			return fmt.Errorf("failed to load attendance for %s: %w", month, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		leaves, err = s.leaveRepo.ListApprovedStartingBetween(gctx, month.FirstDay(), month.LastDay())
		if err != nil {
			return fmt.Errorf("failed to load approved leave for %s: %w", month, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(context.Cause(ctx), payroll.ErrSuperseded) {
			return payroll.Report{}, payroll.ErrSuperseded
		}
		return payroll.Report{}, err
	}

	rows := Aggregate(month, employees, records, leaves, s.settings)
	return BuildReport(month, rows), nil
}
