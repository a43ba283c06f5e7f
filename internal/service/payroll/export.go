package payroll

import (
	"context"
	"strconv"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/export"
	"github.com/shopspring/decimal"
)

var csvHeader = []string{
	"Name", "Department", "Gross (₹)", "Present Days", "Absent Days", "Late", "Leaves", "Deductions (₹)", "Net Pay (₹)",
}

func (s *PayrollServiceImpl) ExportCSV(ctx context.Context, month string) (export.File, error) {
	report, err := s.latestReport(ctx, month, "csv")
	if err != nil {
		return export.File{}, err
	}
	return RenderCSV(report)
}

func (s *PayrollServiceImpl) ExportXLSX(ctx context.Context, month string) (export.File, error) {
	report, err := s.latestReport(ctx, month, "xlsx")
	if err != nil {
		return export.File{}, err
	}
	return RenderXLSX(report)
}

// RenderCSV writes one line per row under the fixed payroll header.
func RenderCSV(report payroll.Report) (export.File, error) {
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []string{
			r.EmployeeName,
			r.Department,
			r.GrossSalary.String(),
			strconv.Itoa(r.PresentDays),
			strconv.Itoa(r.AbsentDays),
			strconv.Itoa(r.LateDays),
			strconv.Itoa(r.LeaveDays),
			r.Deductions.String(),
			r.NetSalary.String(),
		})
	}

	return export.CSV(fileName(report, "csv"), export.Table{Header: csvHeader, Rows: rows})
}

// RenderXLSX writes the same columns as RenderCSV on a sheet named after
// the month, followed by a totals row.
func RenderXLSX(report payroll.Report) (export.File, error) {
	rows := make([][]any, 0, len(report.Rows))
	var (
		gross      = decimal.Zero
		deductions = decimal.Zero
	)
	for _, r := range report.Rows {
		gross = gross.Add(r.GrossSalary)
		deductions = deductions.Add(r.Deductions)
		rows = append(rows, []any{
			r.EmployeeName,
			r.Department,
			r.GrossSalary.InexactFloat64(),
			r.PresentDays,
			r.AbsentDays,
			r.LateDays,
			r.LeaveDays,
			r.Deductions.InexactFloat64(),
			r.NetSalary.InexactFloat64(),
		})
	}

	return export.XLSX(fileName(report, "xlsx"), export.Sheet{
		Name:   report.Month.String(),
		Header: csvHeader,
		Rows:   rows,
		Totals: []any{
			"Total", "", gross.InexactFloat64(), "", "", "", "", deductions.InexactFloat64(), report.TotalNet.InexactFloat64(),
		},
		Widths: map[string]float64{"A": 28, "B": 16, "C": 14, "H": 16, "I": 14},
	})
}

func fileName(report payroll.Report, ext string) string {
	return "payroll_" + report.Month.String() + "." + ext
}
