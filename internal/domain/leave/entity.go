package leave

import (
	"time"
)

type Type string

const (
	TypeCasual Type = "casual"
	TypeSick   Type = "sick"
	TypeAnnual Type = "annual"
	TypeUnpaid Type = "unpaid"
	TypeOther  Type = "other"
)

var Types = []string{string(TypeCasual), string(TypeSick), string(TypeAnnual), string(TypeUnpaid), string(TypeOther)}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// LeaveRequest covers FromDate..ToDate inclusive; Days is that inclusive
// calendar-day count, fixed at application time.
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Type         Type
	FromDate     time.Time
	ToDate       time.Time
	Reason       string
	Status       RequestStatus
	Days         int
	AppliedAt    time.Time
	ReviewedBy   *string
	ReviewedAt   *time.Time
	UpdatedAt    time.Time
}

// Covers reports whether date falls inside the leave range.
func (l LeaveRequest) Covers(date time.Time) bool {
	return !date.Before(l.FromDate) && !date.After(l.ToDate)
}
