package payroll

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/auth"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/leave"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	active []employee.Employee
	err    error
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, f.err
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records  []attendance.Attendance
	from, to time.Time

	// block, when set, makes the first call wait for ctx to be cancelled
	block   bool
	calls   atomic.Int32
	entered chan struct{}
}

func (f *fakeAttendanceRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	if f.calls.Add(1) == 1 && f.block {
		close(f.entered)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.from, f.to = from, to
	return f.records, nil
}

type fakeLeaveRepo struct {
	leave.LeaveRequestRepository
	leaves []leave.LeaveRequest
	err    error
}

func (f *fakeLeaveRepo) ListApprovedStartingBetween(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	return f.leaves, f.err
}

func managerCtx(userID string) context.Context {
	return auth.NewContext(context.Background(), auth.Claims{UserID: userID, Role: user.RoleManager})
}

func newTestService(att *fakeAttendanceRepo, lv *fakeLeaveRepo) *PayrollServiceImpl {
	emps := &fakeEmployeeRepo{active: []employee.Employee{
		emp("e1", "Ravi Kumar", salary(26000)),
		emp("e2", "Priya Shah", salary(20000)),
	}}
	return NewPayrollService(emps, att, lv, payroll.DefaultSettings()).(*PayrollServiceImpl)
}

func TestGetReport(t *testing.T) {
	att := &fakeAttendanceRepo{records: []attendance.Attendance{
		rec("e1", "2025-02-10", attendance.StatusLate),
		rec("e1", "2025-02-11", attendance.StatusAbsent),
		rec("e2", "2025-02-11", attendance.StatusPresent),
	}}
	lv := &fakeLeaveRepo{leaves: []leave.LeaveRequest{approved("e2", "2025-02-20", 3)}}
	svc := newTestService(att, lv)

	resp, err := svc.GetReport(managerCtx("m1"), "2025-02")
	require.NoError(t, err)

	assert.Equal(t, "2025-02-01", att.from.Format(time.DateOnly))
	assert.Equal(t, "2025-02-28", att.to.Format(time.DateOnly))

	assert.Equal(t, "2025-02", resp.Month)
	assert.Equal(t, 2, resp.EmployeeCount)
	require.Len(t, resp.Rows, 2)

	assert.Equal(t, "1100", resp.Rows[0].Deductions.String())
	assert.Equal(t, "24900", resp.Rows[0].NetSalary.String())
	assert.Equal(t, 3, resp.Rows[1].LeaveDays)
	assert.Equal(t, "44900", resp.TotalPayroll.String())
	assert.Equal(t, "22450", resp.AverageNetPay.String())
}

func TestGetReport_LeapYearBounds(t *testing.T) {
	att := &fakeAttendanceRepo{}
	svc := newTestService(att, &fakeLeaveRepo{})

	_, err := svc.GetReport(managerCtx("m1"), "2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", att.to.Format(time.DateOnly))
}

func TestGetReport_InvalidMonth(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, &fakeLeaveRepo{})

	_, err := svc.GetReport(managerCtx("m1"), "2025-13")
	assert.ErrorIs(t, err, calendar.ErrInvalidMonth)
}

func TestGetReport_RequiresClaims(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, &fakeLeaveRepo{})

	_, err := svc.GetReport(context.Background(), "2025-03")
	assert.ErrorIs(t, err, auth.ErrMissingClaim)
}

func TestGetReport_FetchFailureIsAllOrNothing(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newTestService(&fakeAttendanceRepo{}, &fakeLeaveRepo{err: boom})

	resp, err := svc.GetReport(managerCtx("m1"), "2025-03")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, resp.Rows)
}

func TestGetReport_LatestRequestWins(t *testing.T) {
	att := &fakeAttendanceRepo{block: true, entered: make(chan struct{})}
	svc := newTestService(att, &fakeLeaveRepo{})
	ctx := managerCtx("m1")

	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.GetReport(ctx, "2025-03")
		firstErr <- err
	}()

	select {
	case <-att.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never reached the repository")
	}

	resp, err := svc.GetReport(ctx, "2025-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-04", resp.Month)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, payroll.ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request did not return")
	}
	assert.Equal(t, 0, svc.tracker.InFlight())
}

func TestExportCSV(t *testing.T) {
	att := &fakeAttendanceRepo{records: []attendance.Attendance{
		rec("e1", "2025-03-03", attendance.StatusLate),
		rec("e1", "2025-03-04", attendance.StatusLate),
		rec("e1", "2025-03-05", attendance.StatusAbsent),
		rec("e1", "2025-03-06", attendance.StatusPresent),
	}}
	svc := newTestService(att, &fakeLeaveRepo{})

	file, err := svc.ExportCSV(managerCtx("m1"), "2025-03")
	require.NoError(t, err)

	assert.Equal(t, "payroll_2025-03.csv", file.Name)
	assert.Equal(t, export.ContentTypeCSV, file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Department,Gross (₹),Present Days,Absent Days,Late,Leaves,Deductions (₹),Net Pay (₹)", lines[0])
	assert.Equal(t, "Ravi Kumar,Operations,26000,3,1,2,0,1200,24800", lines[1])
	assert.Equal(t, "Priya Shah,Operations,20000,0,0,0,0,0,20000", lines[2])
}

func TestExportXLSX(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, &fakeLeaveRepo{})

	file, err := svc.ExportXLSX(managerCtx("m1"), "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "payroll_2025-03.xlsx", file.Name)
	assert.Equal(t, export.ContentTypeXLSX, file.ContentType)
	assert.NotEmpty(t, file.Content)
}
