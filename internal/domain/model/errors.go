package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrInvalidStudent = errors.New("invalid student")
	ErrUnknownRole    = errors.New("unknown role")
)
