package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee registers a new active employee (manager+ only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists employees with search/role/status filters and roster stats
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// UpdateEmployee applies a partial update
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// SetStatus activates or soft-deactivates an employee. Employees are never hard-deleted.
	SetStatus(ctx context.Context, req SetStatusRequest) (EmployeeResponse, error)
}
