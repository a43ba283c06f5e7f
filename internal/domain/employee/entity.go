package employee

import (
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	Role         user.Role
	Department   *string
	Salary       *decimal.Decimal // monthly gross; nil when not yet set
	JoinDate     time.Time
	Status       Status
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GrossSalary treats a missing salary as zero.
func (e Employee) GrossSalary() decimal.Decimal {
	if e.Salary == nil {
		return decimal.Zero
	}
	return *e.Salary
}

func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return *e.Department
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var Departments = []string{"Operations", "Logistics", "Finance", "HR", "Technical", "Sales", "Management"}
