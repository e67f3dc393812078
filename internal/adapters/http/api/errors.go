package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/halloffame/internal/adapters/auth"
	service "github.com/okian/halloffame/internal/app"
	"github.com/okian/halloffame/internal/domain/hackathon"
	"github.com/okian/halloffame/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrLimitExceeded  = errors.New("limit exceeded")
	ErrBodyTooLarge   = errors.New("request body too large")
	ErrMethodNotAllow = errors.New("method not allowed")
)

// Error records the handler operation and the kind of a failure.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Kind != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap attaches op to err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind attaches op and kind to err.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// NewKind returns an error of the given kind without a cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// classify maps an error to its HTTP status and response code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidStudent):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, ErrLimitExceeded):
		return http.StatusBadRequest, "limit_exceeded"
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, ErrMethodNotAllow):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, hackathon.ErrInvalidTag),
		errors.Is(err, service.ErrEmptyPatch),
		errors.Is(err, service.ErrEmptySelection),
		errors.Is(err, service.ErrInvalidImport):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrDuplicateStudent):
		return http.StatusConflict, "duplicate"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
