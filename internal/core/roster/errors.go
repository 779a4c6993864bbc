package roster

import "errors"

var (
	ErrInvalidHireDate      = errors.New("roster: invalid hire date")
	ErrInvalidSortKey       = errors.New("roster: invalid sort key")
	ErrInvalidSortDirection = errors.New("roster: invalid sort direction")
)
