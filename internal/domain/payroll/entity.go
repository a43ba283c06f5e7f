package payroll

import (
	"fmt"

	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Settings - tunables of the monthly computation
type Settings struct {
	WorkingDaysPerMonth int
	LatePenaltyFraction decimal.Decimal // share of a day's pay docked per late day
}

// DefaultSettings: 26 working days, 10% of a day's pay per late day.
func DefaultSettings() Settings {
	return Settings{
		WorkingDaysPerMonth: 26,
		LatePenaltyFraction: decimal.NewFromFloat(0.10),
	}
}

// Tally - attendance counts of one employee for a month.
// A late day counts in both Present and Late.
type Tally struct {
	Present int
	Absent  int
	Late    int
}

// Row - derived payroll line of one active employee, never persisted
type Row struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	Role         string
	PresentDays  int
	AbsentDays   int
	LateDays     int
	LeaveDays    int
	GrossSalary  decimal.Decimal
	Deductions   decimal.Decimal
	NetSalary    decimal.Decimal
}

// Report - rows of a month plus totals
type Report struct {
	Month         calendar.Month
	Rows          []Row
	EmployeeCount int
	TotalNet      decimal.Decimal
	AverageNet    decimal.Decimal
}

func (s Settings) Validate() error {
	if s.WorkingDaysPerMonth <= 0 {
		return fmt.Errorf("working days per month must be positive: %w", ErrInvalidSettings)
	}
	if s.LatePenaltyFraction.IsNegative() {
		return fmt.Errorf("late penalty fraction must not be negative: %w", ErrInvalidSettings)
	}
	return nil
}
