package user

import "errors"

var (
	ErrAdminPrivilegeRequired  = errors.New("admin or manager privilege required")
	ErrEmployeeContextRequired = errors.New("employee context is required")
	ErrInvalidRole             = errors.New("role must be employee, manager or admin")
)
