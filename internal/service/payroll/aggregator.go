package payroll

import (
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/leave"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Aggregate produces exactly one row per employee, in the order given.
// Attendance outside month and leave that is not approved or does not start
// in month are ignored, whatever the caller fetched. Inputs are not modified.
func Aggregate(
	month calendar.Month,
	employees []employee.Employee,
	records []attendance.Attendance,
	leaves []leave.LeaveRequest,
	settings payroll.Settings,
) []payroll.Row {
	tallies := TallyAttendance(month, records)
	leaveDays := SumApprovedLeave(month, leaves)

	rows := make([]payroll.Row, 0, len(employees))
	for _, emp := range employees {
		tally := tallies[emp.ID]
		gross := emp.GrossSalary()
		deductions := Deductions(gross, tally, settings)

		net := gross.Sub(deductions)
		if net.IsNegative() {
			net = decimal.Zero
		}

		rows = append(rows, payroll.Row{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Department:   emp.DepartmentName(),
			Role:         string(emp.Role),
			PresentDays:  tally.Present,
			AbsentDays:   tally.Absent,
			LateDays:     tally.Late,
			LeaveDays:    leaveDays[emp.ID],
			GrossSalary:  gross,
			Deductions:   deductions,
			NetSalary:    net,
		})
	}

	return rows
}

// TallyAttendance counts statuses per employee. Half days are not counted.
func TallyAttendance(month calendar.Month, records []attendance.Attendance) map[string]payroll.Tally {
	tallies := make(map[string]payroll.Tally)
	for _, rec := range records {
		if !month.Contains(rec.Date) {
			continue
		}

		t := tallies[rec.EmployeeID]
		switch rec.Status {
		case attendance.StatusPresent:
			t.Present++
		case attendance.StatusAbsent:
			t.Absent++
		case attendance.StatusLate:
			t.Present++
			t.Late++
		default:
			continue
		}
		tallies[rec.EmployeeID] = t
	}
	return tallies
}

// SumApprovedLeave sums Days of approved leave starting in month. A leave
// spanning into the next month counts fully here and not at all there.
func SumApprovedLeave(month calendar.Month, leaves []leave.LeaveRequest) map[string]int {
	days := make(map[string]int)
	for _, l := range leaves {
		if l.Status != leave.StatusApproved || !month.Contains(l.FromDate) {
			continue
		}
		days[l.EmployeeID] += l.Days
	}
	return days
}

// Deductions = round(late*perDay*penalty + absent*perDay) with
// perDay = gross/workingDays, rounded to whole currency units.
func Deductions(gross decimal.Decimal, tally payroll.Tally, settings payroll.Settings) decimal.Decimal {
	if settings.WorkingDaysPerMonth <= 0 {
		return decimal.Zero
	}

	days := decimal.NewFromInt(int64(tally.Late)).Mul(settings.LatePenaltyFraction).
		Add(decimal.NewFromInt(int64(tally.Absent)))

	return gross.Mul(days).
		Div(decimal.NewFromInt(int64(settings.WorkingDaysPerMonth))).
		Round(0)
}

// BuildReport adds totals to rows. AverageNet is rounded and 0 for no rows.
func BuildReport(month calendar.Month, rows []payroll.Row) payroll.Report {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.NetSalary)
	}

	average := decimal.Zero
	if len(rows) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(rows)))).Round(0)
	}

	return payroll.Report{
		Month:         month,
		Rows:          rows,
		EmployeeCount: len(rows),
		TotalNet:      total,
		AverageNet:    average,
	}
}
