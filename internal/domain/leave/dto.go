package leave

import (
	"strings"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	Type     string `json:"type"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type == "" {
		r.Type = string(TypeCasual)
	}
	if !validator.IsInSlice(r.Type, Types) {
		errs.Add("type", "must be one of "+strings.Join(Types, ", "))
	}

	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs.Add("from_date", "must be in YYYY-MM-DD format")
	}
	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs.Add("to_date", "must be in YYYY-MM-DD format")
	}
	if fromOK && toOK && to.Before(from) {
		errs.Add("to_date", "must not be before from_date")
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "is required")
	}

	return errs.Err()
}

type LeaveFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Type         string  `json:"type"`
	FromDate     string  `json:"from_date"`
	ToDate       string  `json:"to_date"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	Days         int     `json:"days"`
	AppliedAt    string  `json:"applied_at"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
}

func ToResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		Type:         string(l.Type),
		FromDate:     l.FromDate.Format(time.DateOnly),
		ToDate:       l.ToDate.Format(time.DateOnly),
		Reason:       l.Reason,
		Status:       string(l.Status),
		Days:         l.Days,
		AppliedAt:    l.AppliedAt.Format(time.RFC3339),
		ReviewedBy:   l.ReviewedBy,
	}
}
