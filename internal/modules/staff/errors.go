package staff

import "errors"

var (
	ErrNotFound       = errors.New("staff member not found")
	ErrDuplicateEmail = errors.New("staff email already exists")
)
