package seeder

import "errors"

// Error constants.
var (
	ErrUnhealthy      = errors.New("service is not healthy")
	ErrNoCredentials  = errors.New("a token or a secret is required")
	ErrUnexpectedCode = errors.New("unexpected status code")
	ErrMismatch       = errors.New("rankings do not match the roster")
	ErrMissing        = errors.New("accepted student missing from roster")
)
