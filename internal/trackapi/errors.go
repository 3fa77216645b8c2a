package trackapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors.
var (
	// ErrNotFound matches any UpstreamError carrying a 404 status. It is
	// also returned directly when a lookup answers 2xx with a null body.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned before any request is made when an id is
	// empty or a dot segment.
	ErrInvalidID = errors.New("invalid id")
)

// UpstreamError is returned when the REST API answers with a non-2xx status.
type UpstreamError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: upstream returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: upstream returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is reports a 404 response as ErrNotFound.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
