package csvimport

import "errors"

// Sentinel kinds for import errors.
var (
	ErrEmpty       = errors.New("csv is empty")
	ErrRead        = errors.New("read csv")
	ErrTooManyRows = errors.New("too many rows")
)
