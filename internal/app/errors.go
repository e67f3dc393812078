package service

import "errors"

// Sentinel kinds returned by the service. Callers match them with errors.Is.
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("admin role required")
	ErrNotFound         = errors.New("student not found")
	ErrDuplicateStudent = errors.New("student already exists in team")
	ErrEmptyPatch       = errors.New("update changes nothing")
	ErrEmptySelection   = errors.New("no students selected")
	ErrInvalidImport    = errors.New("invalid import")
)
