package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/attendance"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/auth"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/employee"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/leave"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/calendar"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingClaim):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin or manager privilege required")
	case errors.Is(err, user.ErrEmployeeContextRequired):
		Forbidden(w, "An active employee record is required")
	case errors.Is(err, user.ErrInvalidRole):
		Forbidden(w, err.Error())

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeAlreadyActive),
		errors.Is(err, employee.ErrEmployeeAlreadyInactive),
		errors.Is(err, employee.ErrCannotDeactivateSelf):
		Conflict(w, err.Error())

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "You are outside the allowed radius")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Payroll
	case errors.Is(err, calendar.ErrInvalidMonth):
		BadRequest(w, err.Error(), map[string]string{"month": err.Error()})
	case errors.Is(err, payroll.ErrSuperseded):
		Conflict(w, "Superseded by a newer payroll request")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
