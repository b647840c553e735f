package adapter

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-sync/internal/updates"
)

var (
	// ErrUnauthorized wraps updates.ErrSessionRevoked so the engine treats a
	// rejected token as a revoked session.
	ErrUnauthorized = fmt.Errorf("client unauthorized: %w", updates.ErrSessionRevoked)

	ErrBadRequest          = errors.New("bad request")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")

	ErrUnknownWireType = errors.New("unknown wire type")
	ErrInvalidResponse = errors.New("invalid server response")
	ErrEmptyAddress    = errors.New("empty address")
)

// RetryAfterError carries the server's Retry-After hint along with the
// mapped error.
type RetryAfterError struct {
	Err   error
	Delay time.Duration
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("%v (retry after %s)", e.Err, e.Delay)
}

func (e *RetryAfterError) Unwrap() error { return e.Err }

// RetryAfter returns the delay the server asked for.
func (e *RetryAfterError) RetryAfter() time.Duration { return e.Delay }
