package payroll

import "errors"

var (
	ErrInvalidSettings = errors.New("invalid payroll settings")
	ErrSuperseded      = errors.New("payroll request superseded by a newer request")
)
