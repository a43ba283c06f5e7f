package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, employee_name, date, clock_in, clock_out, status, hours_worked, latitude, longitude, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.EmployeeName, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.Status, &att.HoursWorked, &att.Latitude, &att.Longitude, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

func newAttendanceID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate attendance id: %w", err)
	}
	return id.String(), nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newAttendanceID()
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendance (
			id, employee_id, employee_name, date, clock_in, clock_out, status, hours_worked, latitude, longitude
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		id,
		newAttendance.EmployeeID,
		newAttendance.EmployeeName,
		newAttendance.Date,
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		newAttendance.Status,
		newAttendance.HoursWorked,
		newAttendance.Latitude,
		newAttendance.Longitude,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 AND date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET clock_out = $2, hours_worked = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, att.ID, att.ClockOut, att.HoursWorked, att.Status)
	if err != nil {
		return fmt.Errorf("failed to update attendance %s: %w", att.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// UpsertStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertStatus(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newAttendanceID()
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendance (id, employee_id, employee_name, date, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET status = EXCLUDED.status, employee_name = EXCLUDED.employee_name, updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query, id, att.EmployeeID, att.EmployeeName, att.Date, att.Status))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return saved, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return a.ListByDateRange(ctx, date, date)
}

// ListByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, employee_name
	`

	return a.query(ctx, q, query, from, to)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1
		ORDER BY date DESC
		LIMIT $2
	`

	return a.query(ctx, q, query, employeeID, limit)
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) (int, error) {
	if len(absences) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (id, employee_id, employee_name, date, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, abs := range absences {
		id, err := newAttendanceID()
		if err != nil {
			return 0, err
		}
		batch.Queue(query, id, abs.EmployeeID, abs.EmployeeName, abs.Date, attendance.StatusAbsent)
	}

	results := a.sendBatch(ctx, q, batch)
	defer results.Close()

	inserted := 0
	for range absences {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert absence: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// sendBatch sends on the transaction when ctx carries one.
func (a *attendanceRepository) sendBatch(ctx context.Context, q database.Querier, batch *pgx.Batch) pgx.BatchResults {
	if tx, ok := q.(pgx.Tx); ok {
		return tx.SendBatch(ctx, batch)
	}
	return a.db.SendBatch(ctx, batch)
}

func (a *attendanceRepository) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
