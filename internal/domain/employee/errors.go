package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmailExists             = errors.New("email already registered")
	ErrEmployeeAlreadyActive   = errors.New("employee is already active")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrCannotDeactivateSelf    = errors.New("cannot deactivate your own employee record")
)
