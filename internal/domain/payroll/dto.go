package payroll

import (
	"github.com/shopspring/decimal"
)

type RowResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Department   string          `json:"department"`
	Role         string          `json:"role"`
	PresentDays  int             `json:"present_days"`
	AbsentDays   int             `json:"absent_days"`
	LateDays     int             `json:"late_days"`
	LeaveDays    int             `json:"leave_days"`
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetSalary    decimal.Decimal `json:"net_salary"`
}

type ReportResponse struct {
	Month         string          `json:"month"`
	Rows          []RowResponse   `json:"rows"`
	EmployeeCount int             `json:"employee_count"`
	TotalPayroll  decimal.Decimal `json:"total_payroll"`
	AverageNetPay decimal.Decimal `json:"average_net_pay"`
}

func ToReportResponse(r Report) ReportResponse {
	rows := make([]RowResponse, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, RowResponse{
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.EmployeeName,
			Department:   row.Department,
			Role:         row.Role,
			PresentDays:  row.PresentDays,
			AbsentDays:   row.AbsentDays,
			LateDays:     row.LateDays,
			LeaveDays:    row.LeaveDays,
			GrossSalary:  row.GrossSalary,
			Deductions:   row.Deductions,
			NetSalary:    row.NetSalary,
		})
	}

	return ReportResponse{
		Month:         r.Month.String(),
		Rows:          rows,
		EmployeeCount: r.EmployeeCount,
		TotalPayroll:  r.TotalNet,
		AverageNetPay: r.AverageNet,
	}
}
