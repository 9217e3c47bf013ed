package dashboard

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend rejects the session token.
// Callers drop the stored session when they see it.
var ErrUnauthorized = errors.New("dashboard: not authenticated")

// AuthError is an authentication failure carrying the backend's reason,
// such as bad credentials or a deactivated or expired account. It matches
// ErrUnauthorized with errors.Is, so session-clearing callers need no
// special case.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// ValidationError is a client-side input error raised before any request
// is sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrEmptySelection is returned by OrderBoard.Dispatch when no orders
// are selected
var ErrEmptySelection = &ValidationError{Message: "no orders selected"}

// APIError carries a backend or transport failure verbatim. Status is 0
// when the request never reached the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api request failed: %s", e.Message)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}
