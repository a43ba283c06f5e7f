package leave

import "context"

// LeaveService covers applying for leave and reviewing requests
type LeaveService interface {
	// Apply files a pending request for the authenticated employee
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)

	// List returns all requests for managers, own requests otherwise
	List(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)

	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id string) (LeaveResponse, error)
}
