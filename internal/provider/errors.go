package provider

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingQuery  = errors.New("q is required")
	ErrQueryTooLong  = errors.New("q is too long")
	ErrMissingAPIKey = errors.New("YT_API_KEY missing on server")
)

// UpstreamError is a failure reported by YouTube itself: a non-2xx status,
// an "error" member in the payload, or a body that is not JSON.
type UpstreamError struct {
	StatusCode int
	// Details is YouTube's error object verbatim, or {"raw": body} when the
	// body could not be parsed.
	Details any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("youtube status %d", e.StatusCode)
}

// HTTPStatus is the status forwarded to the caller.
func (e *UpstreamError) HTTPStatus() int {
	if e.StatusCode >= 400 && e.StatusCode <= 599 {
		return e.StatusCode
	}
	return http.StatusBadGateway
}

// TransportError means YouTube could not be reached or the body could not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "youtube fetch failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
