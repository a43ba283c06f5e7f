package payroll

import (
	"context"

	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/export"
)

// PayrollService computes monthly payroll on demand. Nothing is persisted.
type PayrollService interface {
	// GetReport computes the payroll of month ("YYYY-MM")
	GetReport(ctx context.Context, month string) (ReportResponse, error)

	// ExportCSV renders the month's payroll as comma-separated text
	ExportCSV(ctx context.Context, month string) (export.File, error)

	// ExportXLSX renders the month's payroll as a spreadsheet
	ExportXLSX(ctx context.Context, month string) (export.File, error)
}
