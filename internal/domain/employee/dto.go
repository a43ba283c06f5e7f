package employee

import (
	"strings"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Password   string           `json:"password"`
	Phone      *string          `json:"phone,omitempty"`
	Role       string           `json:"role"`
	Department *string          `json:"department,omitempty"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	JoinDate   *string          `json:"join_date,omitempty"` // defaults to today
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "is required")
	}
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if len(r.Password) < 8 {
		errs.Add("password", "must be at least 8 characters")
	}
	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	}
	if !user.Role(r.Role).IsValid() {
		errs.Add("role", "must be employee, manager or admin")
	}
	validateOptional(&errs, r.Phone, r.Department, r.Salary, r.JoinDate)

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID         string           `json:"-"`
	Name       *string          `json:"name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	Role       *string          `json:"role,omitempty"`
	Department *string          `json:"department,omitempty"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	JoinDate   *string          `json:"join_date,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "must not be empty")
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs.Add("email", "must be a valid email address")
		}
	}
	if r.Role != nil && !user.Role(*r.Role).IsValid() {
		errs.Add("role", "must be employee, manager or admin")
	}
	validateOptional(&errs, r.Phone, r.Department, r.Salary, r.JoinDate)

	return errs.Err()
}

func validateOptional(errs *validator.ValidationErrors, phone, department *string, salary *decimal.Decimal, joinDate *string) {
	if phone != nil && *phone != "" && !validator.IsValidPhoneNumber(*phone) {
		errs.Add("phone", "must be a valid phone number")
	}
	if department != nil && *department != "" && !validator.IsInSlice(*department, Departments) {
		errs.Add("department", "must be one of "+strings.Join(Departments, ", "))
	}
	if salary != nil {
		if salary.IsNegative() {
			errs.Add("salary", "must be non-negative")
		} else if !salary.Equal(salary.Truncate(0)) {
			errs.Add("salary", "must be a whole amount")
		}
	}
	if joinDate != nil {
		if _, ok := validator.IsValidDate(*joinDate); !ok {
			errs.Add("join_date", "must be in YYYY-MM-DD format")
		}
	}
}

type SetStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Status != string(StatusActive) && r.Status != string(StatusInactive) {
		errs.Add("status", "must be active or inactive")
	}
	return errs.Err()
}

type EmployeeFilter struct {
	Search *string `json:"search,omitempty"` // name, email or department, case-insensitive
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

type EmployeeResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      *string          `json:"phone,omitempty"`
	Role       string           `json:"role"`
	Department *string          `json:"department,omitempty"`
	Salary     *decimal.Decimal `json:"salary"`
	JoinDate   string           `json:"join_date"`
	Status     string           `json:"status"`
	CreatedAt  string           `json:"created_at"`
}

type EmployeeStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Admins int `json:"admins"`
}

type ListEmployeeResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Stats     EmployeeStats      `json:"stats"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Role:       string(e.Role),
		Department: e.Department,
		Salary:     e.Salary,
		JoinDate:   e.JoinDate.Format(time.DateOnly),
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}
