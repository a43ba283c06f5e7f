package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// List returns requests newest first; EmployeeID/Status narrow the result
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, error)

	// UpdateStatus moves a pending request to status; ErrLeaveRequestAlreadyProcessed
	// when it is no longer pending
	UpdateStatus(ctx context.Context, id string, status RequestStatus, reviewedBy string) (LeaveRequest, error)

	// ListApprovedStartingBetween returns approved requests whose from_date is in [from, to]
	ListApprovedStartingBetween(ctx context.Context, from, to time.Time) ([]LeaveRequest, error)

	// ListApprovedCovering returns approved requests with from_date <= date <= to_date
	ListApprovedCovering(ctx context.Context, date time.Time) ([]LeaveRequest, error)
}
