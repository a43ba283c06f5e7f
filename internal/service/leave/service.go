package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/auth"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/leave"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/database"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx           database.Transactor
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:           tx,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to load applicant: %w", err)
	}
	if emp.Status != employee.StatusActive {
		return leave.LeaveResponse{}, user.ErrEmployeeContextRequired
	}

	from, _ := calendar.ParseDate(req.FromDate)
	to, _ := calendar.ParseDate(req.ToDate)

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Type:         leave.Type(req.Type),
		FromDate:     from.Time,
		ToDate:       to.Time,
		Reason:       req.Reason,
		Status:       leave.StatusPending,
		Days:         from.InclusiveDaysUntil(to),
		AppliedAt:    s.now().UTC(),
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !claims.Role.CanManage() {
		filter.EmployeeID = &claims.UserID
	}
	if filter.Status != nil {
		switch leave.RequestStatus(*filter.Status) {
		case leave.StatusPending, leave.StatusApproved, leave.StatusRejected:
		default:
			return nil, validator.ValidationErrors{{Field: "status", Message: "must be pending, approved or rejected"}}
		}
	}

	requests, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, leave.ToResponse(r))
	}
	return resp, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.review(ctx, id, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.review(ctx, id, leave.StatusRejected)
}

// review moves a pending request to status. Decided requests stay as they are.
func (s *LeaveServiceImpl) review(ctx context.Context, id string, status leave.RequestStatus) (leave.LeaveResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !claims.Role.CanManage() {
		return leave.LeaveResponse{}, user.ErrAdminPrivilegeRequired
	}

	var reviewed leave.LeaveRequest
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		current, err := s.leaveRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if current.Status != leave.StatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		reviewed, err = s.leaveRepo.UpdateStatus(txCtx, id, status, claims.UserID)
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave request reviewed", "leave_id", id, "status", status, "reviewed_by", claims.UserID)
	return leave.ToResponse(reviewed), nil
}
