package attendance

import (
	"time"
)

// Attendance is the single record of one employee on one calendar date.
type Attendance struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	ClockIn      *time.Time
	ClockOut     *time.Time
	Status       Status
	HoursWorked  *float64
	Latitude     *float64
	Longitude    *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
)

var Statuses = []string{string(StatusPresent), string(StatusAbsent), string(StatusLate), string(StatusHalfDay)}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// CountsAsPresent reports whether the day is a worked day. Late days are
// worked days with a penalty.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate
}
