package attendance

import (
	"time"

	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs.Add("location", "latitude and longitude must be sent together")
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	return errs.Err()
}

type MarkAttendanceRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"-"`
	Status     string `json:"status"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if !Status(r.Status).IsValid() {
		errs.Add("status", "status must be one of present, absent, late, half-day")
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID           string   `json:"id,omitempty"` // empty for synthesized board entries
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Date         string   `json:"date"`
	ClockIn      *string  `json:"clock_in,omitempty"`  // local HH:MM:SS
	ClockOut     *string  `json:"clock_out,omitempty"` // local HH:MM:SS
	Status       string   `json:"status"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

type BoardStats struct {
	TotalStaff int `json:"total_staff"`
	Present    int `json:"present"` // present + late
	Absent     int `json:"absent"`
	Late       int `json:"late"`
}

type BoardResponse struct {
	Date    string               `json:"date"`
	Records []AttendanceResponse `json:"records"`
	Stats   BoardStats           `json:"stats"`
}

type HistoryResponse struct {
	EmployeeID  string               `json:"employee_id"`
	Records     []AttendanceResponse `json:"records"`
	PresentDays int                  `json:"present_days"`
}

// ToResponse renders clock times in loc.
func ToResponse(a Attendance, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format(time.DateOnly),
		ClockIn:      formatClock(a.ClockIn, loc),
		ClockOut:     formatClock(a.ClockOut, loc),
		Status:       string(a.Status),
		HoursWorked:  a.HoursWorked,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
	}
}

func formatClock(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.TimeOnly)
	return &s
}
