package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/leave"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `id, employee_id, employee_name, type, from_date, to_date, reason, status, days, applied_at, reviewed_by, reviewed_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.EmployeeName,
		&lr.Type,
		&lr.FromDate,
		&lr.ToDate,
		&lr.Reason,
		&lr.Status,
		&lr.Days,
		&lr.AppliedAt,
		&lr.ReviewedBy,
		&lr.ReviewedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, employee_name, type, from_date, to_date, reason, status, days, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		id.String(),
		request.EmployeeID,
		request.EmployeeName,
		request.Type,
		request.FromDate,
		request.ToDate,
		request.Reason,
		request.Status,
		request.Days,
		request.AppliedAt,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request %s: %w", id, err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
	}

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY applied_at DESC, id DESC`

	return r.query(ctx, q, query, args...)
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, reviewedBy string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + leaveRequestColumns

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, status, reviewedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// either missing or already decided
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.LeaveRequest{}, getErr
			}
			return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request %s: %w", id, err)
	}
	return lr, nil
}

// ListApprovedStartingBetween implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedStartingBetween(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE status = 'approved' AND from_date BETWEEN $1 AND $2
		ORDER BY from_date
	`

	return r.query(ctx, q, query, from, to)
}

// ListApprovedCovering implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedCovering(ctx context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE status = 'approved' AND $1::date BETWEEN from_date AND to_date
	`

	return r.query(ctx, q, query, date)
}

func (r *leaveRequestRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
