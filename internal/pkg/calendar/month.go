// Package calendar holds date helpers shared by attendance, leave and payroll.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

// Month is a calendar month. The zero value is not valid.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay is the first day of the month at UTC midnight.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay is the last day of the month at UTC midnight.
func (m Month) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return m.LastDay().Day()
}

// Contains reports whether the calendar date of d falls in the month.
func (m Month) Contains(d time.Time) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

// Date is a calendar date without time of day, serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date, keeping t's local day.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// InclusiveDaysUntil counts calendar days from d to end, both inclusive.
// It returns 0 when end is before d.
func (d Date) InclusiveDaysUntil(end Date) int {
	if end.Before(d.Time) {
		return 0
	}
	return int(end.Sub(d.Time).Hours()/24) + 1
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a string")
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	*d = parsed
	return nil
}
