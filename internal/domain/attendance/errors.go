package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in / clock-out errors
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrNotCheckedIn         = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance record already exists for this date")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)
