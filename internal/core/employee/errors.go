package employee

import "errors"

var (
	ErrInvalidID           = errors.New("employee: invalid id")
	ErrInvalidManagerEmail = errors.New("employee: invalid manager email")
	ErrInvalidSearch       = errors.New("employee: invalid search term")
	ErrEmployeeNotFound    = errors.New("employee: not found")
)
