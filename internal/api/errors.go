package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the account endpoints. Every other failure surfaces
// either as *StatusError (the server answered outside 2xx) or as a wrapped
// transport error.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// StatusError is a non-2xx response from the API, with up to 1 KiB of the
// response body for context.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("API returned HTTP %d: %s", e.Code, e.Body)
}

// statusCode extracts the HTTP status from err, or 0 for transport errors.
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
