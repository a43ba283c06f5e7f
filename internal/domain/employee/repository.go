package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, emp Employee) error
	UpdateStatus(ctx context.Context, id string, status Status) error

	// List returns employees ordered by name.
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// GetActive returns every active employee ordered by name.
	GetActive(ctx context.Context) ([]Employee, error)
}
