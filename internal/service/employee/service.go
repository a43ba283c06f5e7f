package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/auth"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewEmployeeService(tx database.Transactor, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// managerClaims returns the caller's claims, requiring admin or manager.
func managerClaims(ctx context.Context) (auth.Claims, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return auth.Claims{}, err
	}
	if !claims.Role.CanManage() {
		return auth.Claims{}, user.ErrAdminPrivilegeRequired
	}
	return claims, nil
}

// Only admins may hand out the admin role.
func checkRoleGrant(caller auth.Claims, role user.Role) error {
	if role == user.RoleAdmin && caller.Role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	claims, err := managerClaims(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := checkRoleGrant(claims, user.Role(req.Role)); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate := calendar.NewDate(s.now()).Time
	if req.JoinDate != nil {
		joinDate, _ = time.Parse(time.DateOnly, *req.JoinDate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created employee.Employee
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		exists, err := s.employeeRepo.ExistsByEmail(txCtx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return employee.ErrEmailExists
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        emptyToNil(req.Phone),
			Role:         user.Role(req.Role),
			Department:   emptyToNil(req.Department),
			Salary:       req.Salary,
			JoinDate:     joinDate,
			Status:       employee.StatusActive,
			PasswordHash: string(hash),
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "created_by", claims.UserID)
	return employee.ToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService. Stats always describe
// the whole roster, not the filtered page.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	all, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	matched := all
	if filter.Search != nil || filter.Role != nil || filter.Status != nil {
		matched, err = s.employeeRepo.List(ctx, filter)
		if err != nil {
			return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
	}

	resp := employee.ListEmployeeResponse{
		Employees: make([]employee.EmployeeResponse, 0, len(matched)),
	}
	for _, e := range matched {
		resp.Employees = append(resp.Employees, employee.ToResponse(e))
	}
	for _, e := range all {
		resp.Stats.Total++
		if e.Status == employee.StatusActive {
			resp.Stats.Active++
		}
		if e.Role == user.RoleAdmin {
			resp.Stats.Admins++
		}
	}
	return resp, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	claims, err := managerClaims(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Email != nil && *req.Email != emp.Email {
			exists, err := s.employeeRepo.ExistsByEmail(txCtx, *req.Email)
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return employee.ErrEmailExists
			}
			emp.Email = *req.Email
		}
		if req.Role != nil {
			role := user.Role(*req.Role)
			if err := checkRoleGrant(claims, role); err != nil {
				return err
			}
			emp.Role = role
		}
		if req.Name != nil {
			emp.Name = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			emp.Phone = emptyToNil(req.Phone)
		}
		if req.Department != nil {
			emp.Department = emptyToNil(req.Department)
		}
		if req.Salary != nil {
			emp.Salary = req.Salary
		}
		if req.JoinDate != nil {
			emp.JoinDate, _ = time.Parse(time.DateOnly, *req.JoinDate)
		}

		if err := s.employeeRepo.Update(txCtx, emp); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		updated = emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(updated), nil
}

// SetStatus implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetStatus(ctx context.Context, req employee.SetStatusRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	claims, err := managerClaims(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	status := employee.Status(req.Status)
	if status == employee.StatusInactive && req.ID == claims.UserID {
		return employee.EmployeeResponse{}, employee.ErrCannotDeactivateSelf
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if emp.Status == status {
		if status == employee.StatusActive {
			return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyActive
		}
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}

	if err := s.employeeRepo.UpdateStatus(ctx, emp.ID, status); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee status: %w", err)
	}
	emp.Status = status

	slog.Info("employee status changed", "employee_id", emp.ID, "status", status, "changed_by", claims.UserID)
	return employee.ToResponse(emp), nil
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
