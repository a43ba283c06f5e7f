package employee

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/auth"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type memEmployeeRepo struct {
	byID map[string]employee.Employee
	seq  int
}

func newMemEmployeeRepo(seed ...employee.Employee) *memEmployeeRepo {
	m := &memEmployeeRepo{byID: make(map[string]employee.Employee)}
	for _, e := range seed {
		m.byID[e.ID] = e
	}
	return m
}

func (m *memEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	m.seq++
	e.ID = fmt.Sprintf("emp-%d", m.seq)
	m.byID[e.ID] = e
	return e, nil
}

func (m *memEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := m.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, e := range m.byID {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memEmployeeRepo) Update(ctx context.Context, e employee.Employee) error {
	if _, ok := m.byID[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	m.byID[e.ID] = e
	return nil
}

func (m *memEmployeeRepo) UpdateStatus(ctx context.Context, id string, status employee.Status) error {
	e, ok := m.byID[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Status = status
	m.byID[id] = e
	return nil
}

func (m *memEmployeeRepo) List(ctx context.Context, f employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.byID {
		if f.Role != nil && string(e.Role) != *f.Role {
			continue
		}
		if f.Status != nil && string(e.Status) != *f.Status {
			continue
		}
		if f.Search != nil && !strings.Contains(strings.ToLower(e.Name+" "+e.Email+" "+e.DepartmentName()), strings.ToLower(*f.Search)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	active := string(employee.StatusActive)
	return m.List(ctx, employee.EmployeeFilter{Status: &active})
}

func ctxAs(id string, role user.Role) context.Context {
	return auth.NewContext(context.Background(), auth.Claims{UserID: id, Role: role})
}

func ptr[T any](v T) *T { return &v }

func newService(repo *memEmployeeRepo) *EmployeeServiceImpl {
	svc := NewEmployeeService(passthroughTx{}, repo).(*EmployeeServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateEmployee(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := newService(repo)
	salary := decimal.NewFromInt(32000)

	resp, err := svc.CreateEmployee(ctxAs("m1", user.RoleManager), employee.CreateEmployeeRequest{
		Name:       "  Farhan Ali ",
		Email:      "Farhan.Ali@PMJ.in",
		Password:   "s3cret-pass",
		Department: ptr("Logistics"),
		Salary:     &salary,
	})
	require.NoError(t, err)

	assert.Equal(t, "Farhan Ali", resp.Name)
	assert.Equal(t, "farhan.ali@pmj.in", resp.Email)
	assert.Equal(t, "employee", resp.Role)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "2025-03-10", resp.JoinDate)

	stored := repo.byID[resp.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	repo := newMemEmployeeRepo(employee.Employee{ID: "e1", Name: "Ravi", Email: "ravi@pmj.in", Status: employee.StatusActive})
	svc := newService(repo)

	_, err := svc.CreateEmployee(ctxAs("m1", user.RoleManager), employee.CreateEmployeeRequest{
		Name: "Ravi Two", Email: "RAVI@pmj.in", Password: "password1",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc := newService(newMemEmployeeRepo())

	_, err := svc.CreateEmployee(ctxAs("m1", user.RoleManager), employee.CreateEmployeeRequest{
		Name: "", Email: "not-an-email", Password: "short", Department: ptr("Catering"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "department")
}

func TestCreateEmployee_Permissions(t *testing.T) {
	svc := newService(newMemEmployeeRepo())
	req := employee.CreateEmployeeRequest{Name: "Boss", Email: "boss@pmj.in", Password: "password1", Role: "admin"}

	_, err := svc.CreateEmployee(ctxAs("e1", user.RoleEmployee), req)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.CreateEmployee(ctxAs("m1", user.RoleManager), req)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.CreateEmployee(ctxAs("a1", user.RoleAdmin), req)
	assert.NoError(t, err)
}

func TestListEmployees(t *testing.T) {
	repo := newMemEmployeeRepo(
		employee.Employee{ID: "e1", Name: "Asha", Email: "asha@pmj.in", Role: user.RoleAdmin, Status: employee.StatusActive},
		employee.Employee{ID: "e2", Name: "Bala", Email: "bala@pmj.in", Role: user.RoleEmployee, Status: employee.StatusInactive, Department: ptr("Technical")},
		employee.Employee{ID: "e3", Name: "Charu", Email: "charu@pmj.in", Role: user.RoleEmployee, Status: employee.StatusActive, Department: ptr("Technical")},
	)
	svc := newService(repo)

	resp, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Search: ptr("techn")})
	require.NoError(t, err)

	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "Bala", resp.Employees[0].Name)
	assert.Equal(t, employee.EmployeeStats{Total: 3, Active: 2, Admins: 1}, resp.Stats)
}

func TestUpdateEmployee(t *testing.T) {
	repo := newMemEmployeeRepo(
		employee.Employee{ID: "e1", Name: "Ravi", Email: "ravi@pmj.in", Role: user.RoleEmployee, Status: employee.StatusActive},
		employee.Employee{ID: "e2", Name: "Sita", Email: "sita@pmj.in", Role: user.RoleEmployee, Status: employee.StatusActive},
	)
	svc := newService(repo)
	ctx := ctxAs("m1", user.RoleManager)

	resp, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:     "e1",
		Name:   ptr("Ravi Kumar"),
		Salary: ptr(decimal.NewFromInt(28000)),
		Phone:  ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", resp.Name)
	assert.Equal(t, "28000", resp.Salary.String())
	assert.Nil(t, resp.Phone)
	assert.Equal(t, "ravi@pmj.in", resp.Email)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "e1", Email: ptr("sita@pmj.in")})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "e1", Role: ptr("admin")})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "missing", Name: ptr("X")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSetStatus(t *testing.T) {
	repo := newMemEmployeeRepo(
		employee.Employee{ID: "e1", Name: "Ravi", Status: employee.StatusActive},
		employee.Employee{ID: "m1", Name: "Mona", Role: user.RoleManager, Status: employee.StatusActive},
	)
	svc := newService(repo)
	ctx := ctxAs("m1", user.RoleManager)

	resp, err := svc.SetStatus(ctx, employee.SetStatusRequest{ID: "e1", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)
	assert.Equal(t, employee.StatusInactive, repo.byID["e1"].Status)

	_, err = svc.SetStatus(ctx, employee.SetStatusRequest{ID: "e1", Status: "inactive"})
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInactive)

	_, err = svc.SetStatus(ctx, employee.SetStatusRequest{ID: "e1", Status: "active"})
	assert.NoError(t, err)

	_, err = svc.SetStatus(ctx, employee.SetStatusRequest{ID: "m1", Status: "inactive"})
	assert.ErrorIs(t, err, employee.ErrCannotDeactivateSelf)

	_, err = svc.SetStatus(ctx, employee.SetStatusRequest{ID: "e1", Status: "deleted"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
