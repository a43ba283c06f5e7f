package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/auth"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/leave"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/export"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/utils"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 366
)

// Options - site rules for clock-in
type Options struct {
	Location   *time.Location
	LateCutoff time.Duration // clock-in after local midnight + LateCutoff is late
	Geofence   utils.Geofence
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	opts           Options
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	opts Options,
) attendance.AttendanceService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		opts:           opts,
		now:            time.Now,
	}
}

// today returns the current instant and its local calendar date.
func (a *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := a.now().In(a.opts.Location)
	return now, calendar.NewDate(now).Time
}

// currentEmployee resolves the active employee behind the request token.
func (a *AttendanceServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, user.ErrEmployeeContextRequired
		}
		return employee.Employee{}, fmt.Errorf("failed to load employee %s: %w", claims.UserID, err)
	}
	if emp.Status != employee.StatusActive {
		return employee.Employee{}, user.ErrEmployeeContextRequired
	}
	return emp, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if a.opts.Geofence.Enabled() {
		if req.Latitude == nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{
				{Field: "location", Message: "location is required to clock in"},
			}
		}
		if !a.opts.Geofence.Allows(*req.Latitude, *req.Longitude) {
			return attendance.AttendanceResponse{}, attendance.ErrOutsideAllowedRadius
		}
	}

	emp, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, date := a.today()

	_, err = a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	clockIn := now.UTC()
	created, err := a.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         date,
		ClockIn:      &clockIn,
		Status:       a.arrivalStatus(now),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceExists) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return attendance.ToResponse(created, a.opts.Location), nil
}

// arrivalStatus is late strictly after the cutoff, present otherwise.
func (a *AttendanceServiceImpl) arrivalStatus(localNow time.Time) attendance.Status {
	midnight := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, localNow.Location())
	if localNow.Sub(midnight) > a.opts.LateCutoff {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	emp, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, date := a.today()

	record, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.ClockOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	clockOut := now.UTC()
	hours := HoursWorked(*record.ClockIn, clockOut)
	record.ClockOut = &clockOut
	record.HoursWorked = &hours

	if err := a.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return attendance.ToResponse(record, a.opts.Location), nil
}

// HoursWorked is the elapsed time in hours rounded to one decimal.
func HoursWorked(in, out time.Time) float64 {
	minutes := out.Sub(in).Minutes()
	if minutes < 0 {
		return 0
	}
	return math.Round(minutes*10/60) / 10
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.AttendanceResponse, error) {
	emp, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, date := a.today()
	record, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record, a.opts.Location), nil
}

// GetBoard implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetBoard(ctx context.Context, date string) (attendance.BoardResponse, error) {
	day, err := a.parseDay(date)
	if err != nil {
		return attendance.BoardResponse{}, err
	}

	employees, err := a.employeeRepo.GetActive(ctx)
	if err != nil {
		return attendance.BoardResponse{}, fmt.Errorf("failed to load active employees: %w", err)
	}
	records, err := a.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return attendance.BoardResponse{}, fmt.Errorf("failed to load attendance for %s: %w", day.Format(time.DateOnly), err)
	}

	byEmployee := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}

	board := attendance.BoardResponse{
		Date:    day.Format(time.DateOnly),
		Records: make([]attendance.AttendanceResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		record, ok := byEmployee[emp.ID]
		if !ok {
			// shown as absent, not saved
			record = attendance.Attendance{
				EmployeeID: emp.ID,
				Date:       day,
				Status:     attendance.StatusAbsent,
			}
		}
		record.EmployeeName = emp.Name

		switch record.Status {
		case attendance.StatusPresent:
			board.Stats.Present++
		case attendance.StatusLate:
			board.Stats.Present++
			board.Stats.Late++
		case attendance.StatusAbsent:
			board.Stats.Absent++
		}
		board.Records = append(board.Records, attendance.ToResponse(record, a.opts.Location))
	}
	board.Stats.TotalStaff = len(employees)

	return board, nil
}

// parseDay accepts "YYYY-MM-DD"; empty means today.
func (a *AttendanceServiceImpl) parseDay(date string) (time.Time, error) {
	if date == "" {
		_, today := a.today()
		return today, nil
	}
	day, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "must be in YYYY-MM-DD format"}}
	}
	return day, nil
}

// MarkManual implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkManual(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, _ := validator.IsValidDate(req.Date)
	saved, err := a.attendanceRepo.UpsertStatus(ctx, attendance.Attendance{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         day,
		Status:       attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	if claims, err := auth.FromContext(ctx); err == nil {
		slog.Info("attendance marked manually",
			"employee_id", emp.ID, "date", req.Date, "status", req.Status, "marked_by", claims.UserID)
	}

	return attendance.ToResponse(saved, a.opts.Location), nil
}

// GetEmployeeHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetEmployeeHistory(ctx context.Context, employeeID string, limit int) (attendance.HistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	if _, err := a.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.HistoryResponse{}, err
	}

	records, err := a.attendanceRepo.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to load attendance history: %w", err)
	}

	history := attendance.HistoryResponse{
		EmployeeID: employeeID,
		Records:    make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, r := range records {
		if r.Status.CountsAsPresent() {
			history.PresentDays++
		}
		history.Records = append(history.Records, attendance.ToResponse(r, a.opts.Location))
	}
	return history, nil
}

// ExportBoardCSV implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportBoardCSV(ctx context.Context, date string) (export.File, error) {
	board, err := a.GetBoard(ctx, date)
	if err != nil {
		return export.File{}, err
	}

	rows := make([][]string, 0, len(board.Records))
	for _, r := range board.Records {
		hours := "-"
		if r.HoursWorked != nil {
			hours = fmt.Sprintf("%.1f", *r.HoursWorked)
		}
		rows = append(rows, []string{
			r.EmployeeName,
			r.Date,
			orDash(r.ClockIn),
			orDash(r.ClockOut),
			r.Status,
			hours,
		})
	}

	return export.CSV("attendance_"+board.Date+".csv", export.Table{
		Header: []string{"Name", "Date", "Clock In", "Clock Out", "Status", "Hours"},
		Rows:   rows,
	})
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// MarkAbsent implements attendance.AttendanceService. Employees who joined
// after date or are on approved leave that day are skipped.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, date time.Time) (int, error) {
	day := calendar.NewDate(date).Time

	employees, err := a.employeeRepo.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load active employees: %w", err)
	}
	records, err := a.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to load attendance: %w", err)
	}
	onLeave, err := a.leaveRepo.ListApprovedCovering(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to load approved leave: %w", err)
	}

	skip := make(map[string]bool, len(records)+len(onLeave))
	for _, r := range records {
		skip[r.EmployeeID] = true
	}
	for _, l := range onLeave {
		skip[l.EmployeeID] = true
	}

	var absences []attendance.Attendance
	for _, emp := range employees {
		if skip[emp.ID] || calendar.NewDate(emp.JoinDate).After(day) {
			continue
		}
		absences = append(absences, attendance.Attendance{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Date:         day,
			Status:       attendance.StatusAbsent,
		})
	}

	if len(absences) == 0 {
		return 0, nil
	}
	return a.attendanceRepo.BulkCreateAbsences(ctx, absences)
}
