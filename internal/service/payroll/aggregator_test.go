package payroll

import (
	"testing"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/leave"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march2025 = calendar.Month{Year: 2025, Month: time.March}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func salary(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func emp(id, name string, gross *decimal.Decimal) employee.Employee {
	dept := "Operations"
	return employee.Employee{
		ID:         id,
		Name:       name,
		Role:       user.RoleEmployee,
		Department: &dept,
		Salary:     gross,
		Status:     employee.StatusActive,
	}
}

func rec(employeeID, date string, status attendance.Status) attendance.Attendance {
	return attendance.Attendance{EmployeeID: employeeID, Date: day(date), Status: status}
}

func approved(employeeID, from string, days int) leave.LeaveRequest {
	return leave.LeaveRequest{
		EmployeeID: employeeID,
		FromDate:   day(from),
		ToDate:     day(from).AddDate(0, 0, days-1),
		Days:       days,
		Status:     leave.StatusApproved,
	}
}

func TestAggregate_NoAttendance(t *testing.T) {
	rows := Aggregate(march2025, []employee.Employee{emp("e1", "Ravi", salary(26000))}, nil, nil, payroll.DefaultSettings())

	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "e1", r.EmployeeID)
	assert.Equal(t, 0, r.PresentDays)
	assert.Equal(t, 0, r.AbsentDays)
	assert.Equal(t, 0, r.LateDays)
	assert.Equal(t, 0, r.LeaveDays)
	assert.True(t, r.Deductions.IsZero())
	assert.Equal(t, "26000", r.NetSalary.String())
}

func TestAggregate_LateAndAbsentDeductions(t *testing.T) {
	records := []attendance.Attendance{
		rec("e1", "2025-03-03", attendance.StatusLate),
		rec("e1", "2025-03-04", attendance.StatusLate),
		rec("e1", "2025-03-05", attendance.StatusAbsent),
		rec("e1", "2025-03-06", attendance.StatusPresent),
	}

	rows := Aggregate(march2025, []employee.Employee{emp("e1", "Ravi", salary(26000))}, records, nil, payroll.DefaultSettings())

	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, 3, r.PresentDays)
	assert.Equal(t, 1, r.AbsentDays)
	assert.Equal(t, 2, r.LateDays)
	// perDay 1000: 2 late * 100 + 1 absent * 1000
	assert.Equal(t, "1200", r.Deductions.String())
	assert.Equal(t, "24800", r.NetSalary.String())
}

func TestAggregate_DeductionsRounded(t *testing.T) {
	records := []attendance.Attendance{rec("e1", "2025-03-10", attendance.StatusAbsent)}

	rows := Aggregate(march2025, []employee.Employee{emp("e1", "Meena", salary(30000))}, records, nil, payroll.DefaultSettings())

	// 30000/26 = 1153.846...
	assert.Equal(t, "1154", rows[0].Deductions.String())
	assert.Equal(t, "28846", rows[0].NetSalary.String())
}

func TestAggregate_NetNeverNegative(t *testing.T) {
	var records []attendance.Attendance
	for d := 1; d <= 30; d++ {
		records = append(records, rec("e1", time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC).Format(time.DateOnly), attendance.StatusAbsent))
	}

	rows := Aggregate(march2025, []employee.Employee{emp("e1", "Suresh", salary(26000))}, records, nil, payroll.DefaultSettings())

	assert.Equal(t, 30, rows[0].AbsentDays)
	assert.Equal(t, "30000", rows[0].Deductions.String())
	assert.True(t, rows[0].NetSalary.IsZero())
}

func TestAggregate_MissingSalaryIsZero(t *testing.T) {
	records := []attendance.Attendance{rec("e1", "2025-03-10", attendance.StatusAbsent)}

	rows := Aggregate(march2025, []employee.Employee{emp("e1", "New Joiner", nil)}, records, nil, payroll.DefaultSettings())

	assert.True(t, rows[0].GrossSalary.IsZero())
	assert.True(t, rows[0].Deductions.IsZero())
	assert.True(t, rows[0].NetSalary.IsZero())
}

func TestAggregate_HalfDayNotTallied(t *testing.T) {
	records := []attendance.Attendance{
		rec("e1", "2025-03-10", attendance.StatusHalfDay),
		rec("e1", "2025-03-11", attendance.StatusHalfDay),
	}

	rows := Aggregate(march2025, []employee.Employee{emp("e1", "Ravi", salary(26000))}, records, nil, payroll.DefaultSettings())

	assert.Equal(t, 0, rows[0].PresentDays)
	assert.Equal(t, 0, rows[0].AbsentDays)
	assert.Equal(t, 0, rows[0].LateDays)
	assert.True(t, rows[0].Deductions.IsZero())
}

func TestAggregate_IgnoresRecordsOutsideMonth(t *testing.T) {
	records := []attendance.Attendance{
		rec("e1", "2025-02-28", attendance.StatusAbsent),
		rec("e1", "2025-03-31", attendance.StatusPresent),
		rec("e1", "2025-04-01", attendance.StatusAbsent),
	}

	rows := Aggregate(march2025, []employee.Employee{emp("e1", "Ravi", salary(26000))}, records, nil, payroll.DefaultSettings())

	assert.Equal(t, 1, rows[0].PresentDays)
	assert.Equal(t, 0, rows[0].AbsentDays)
}

func TestAggregate_LeaveDays(t *testing.T) {
	pending := approved("e1", "2025-03-20", 2)
	pending.Status = leave.StatusPending

	leaves := []leave.LeaveRequest{
		approved("e1", "2025-03-03", 2),
		approved("e1", "2025-03-28", 5), // runs into April, counted fully in March
		approved("e1", "2025-02-27", 3), // starts in February, not counted
		pending,
		approved("e2", "2025-03-12", 1),
	}

	employees := []employee.Employee{emp("e1", "Ravi", salary(26000)), emp("e2", "Priya", salary(20000))}
	rows := Aggregate(march2025, employees, nil, leaves, payroll.DefaultSettings())

	assert.Equal(t, 7, rows[0].LeaveDays)
	assert.Equal(t, 1, rows[1].LeaveDays)
	// leave never reduces pay
	assert.True(t, rows[0].Deductions.IsZero())
}

func TestAggregate_OneRowPerEmployeeInRosterOrder(t *testing.T) {
	employees := []employee.Employee{
		emp("e3", "Zoya", salary(15000)),
		emp("e1", "Amit", salary(26000)),
		emp("e2", "Kiran", salary(20000)),
	}
	records := []attendance.Attendance{
		rec("ghost", "2025-03-05", attendance.StatusAbsent), // not on the roster
		rec("e1", "2025-03-05", attendance.StatusPresent),
	}

	rows := Aggregate(march2025, employees, records, nil, payroll.DefaultSettings())

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"e3", "e1", "e2"}, []string{rows[0].EmployeeID, rows[1].EmployeeID, rows[2].EmployeeID})
}

func TestAggregate_DoesNotMutateInputs(t *testing.T) {
	employees := []employee.Employee{emp("e1", "Ravi", salary(26000))}
	records := []attendance.Attendance{rec("e1", "2025-03-05", attendance.StatusLate)}
	leaves := []leave.LeaveRequest{approved("e1", "2025-03-06", 1)}

	first := Aggregate(march2025, employees, records, leaves, payroll.DefaultSettings())
	second := Aggregate(march2025, employees, records, leaves, payroll.DefaultSettings())

	assert.Equal(t, first, second)
	assert.Equal(t, attendance.StatusLate, records[0].Status)
	assert.Equal(t, "26000", employees[0].Salary.String())
}

func TestAggregate_ConfigurableSettings(t *testing.T) {
	settings := payroll.Settings{
		WorkingDaysPerMonth: 30,
		LatePenaltyFraction: decimal.NewFromFloat(0.5),
	}
	records := []attendance.Attendance{
		rec("e1", "2025-03-05", attendance.StatusLate),
		rec("e1", "2025-03-06", attendance.StatusAbsent),
	}

	rows := Aggregate(march2025, []employee.Employee{emp("e1", "Ravi", salary(30000))}, records, nil, settings)

	// perDay 1000: 500 late + 1000 absent
	assert.Equal(t, "1500", rows[0].Deductions.String())
}

func TestAggregate_WorkedExamples(t *testing.T) {
	tests := []struct {
		name           string
		gross          *decimal.Decimal
		statuses       []attendance.Status
		wantPresent    int
		wantAbsent     int
		wantLate       int
		wantDeductions string
		wantNet        string
	}{
		{
			name:           "two absent days",
			gross:          salary(26000),
			statuses:       []attendance.Status{attendance.StatusAbsent, attendance.StatusAbsent},
			wantAbsent:     2,
			wantDeductions: "2000",
			wantNet:        "24000",
		},
		{
			name:           "three late days",
			gross:          salary(26000),
			statuses:       []attendance.Status{attendance.StatusLate, attendance.StatusLate, attendance.StatusLate},
			wantPresent:    3,
			wantLate:       3,
			wantDeductions: "300",
			wantNet:        "25700",
		},
		{
			name:           "one late one absent rounds",
			gross:          salary(10000),
			statuses:       []attendance.Status{attendance.StatusLate, attendance.StatusAbsent},
			wantPresent:    1,
			wantAbsent:     1,
			wantLate:       1,
			wantDeductions: "423",
			wantNet:        "9577",
		},
		{
			name:           "no salary",
			gross:          nil,
			statuses:       []attendance.Status{attendance.StatusPresent, attendance.StatusLate, attendance.StatusAbsent},
			wantPresent:    2,
			wantAbsent:     1,
			wantLate:       1,
			wantDeductions: "0",
			wantNet:        "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []attendance.Attendance
			for i, status := range tt.statuses {
				records = append(records, rec("e1", time.Date(2025, 3, i+3, 0, 0, 0, 0, time.UTC).Format(time.DateOnly), status))
			}

			rows := Aggregate(march2025, []employee.Employee{emp("e1", "Ravi", tt.gross)}, records, nil, payroll.DefaultSettings())

			require.Len(t, rows, 1)
			r := rows[0]
			assert.Equal(t, tt.wantPresent, r.PresentDays)
			assert.Equal(t, tt.wantAbsent, r.AbsentDays)
			assert.Equal(t, tt.wantLate, r.LateDays)
			assert.Equal(t, tt.wantDeductions, r.Deductions.String())
			assert.Equal(t, tt.wantNet, r.NetSalary.String())
		})
	}
}

func TestDeductions(t *testing.T) {
	tests := []struct {
		name  string
		gross int64
		tally payroll.Tally
		want  string
	}{
		{"nothing", 26000, payroll.Tally{}, "0"},
		{"one late", 26000, payroll.Tally{Present: 1, Late: 1}, "100"},
		{"one late rounds half up", 10530, payroll.Tally{Present: 1, Late: 1}, "41"},
		{"late and absent", 25000, payroll.Tally{Present: 3, Late: 3, Absent: 2}, "2212"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deductions(decimal.NewFromInt(tt.gross), tt.tally, payroll.DefaultSettings())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBuildReport(t *testing.T) {
	rows := []payroll.Row{
		{EmployeeID: "e1", NetSalary: decimal.NewFromInt(25000)},
		{EmployeeID: "e2", NetSalary: decimal.NewFromInt(18001)},
	}

	report := BuildReport(march2025, rows)
	assert.Equal(t, 2, report.EmployeeCount)
	assert.Equal(t, "43001", report.TotalNet.String())
	assert.Equal(t, "21501", report.AverageNet.String())

	empty := BuildReport(march2025, nil)
	assert.Equal(t, 0, empty.EmployeeCount)
	assert.True(t, empty.AverageNet.IsZero())
}
