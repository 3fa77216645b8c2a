package graph

import (
	"errors"
	"net/http"

	"github.com/justestif/go-catstronauts-gateway/internal/trackapi"
)

// Error codes reported in GraphQL error extensions.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeBadUserInput  = "BAD_USER_INPUT"
	CodeUpstreamError = "UPSTREAM_ERROR"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// fieldError is a resolver error that exposes a code and, for upstream
// failures, the HTTP status as GraphQL error extensions.
type fieldError struct {
	err    error
	code   string
	status int
}

func (e *fieldError) Error() string { return e.err.Error() }

func (e *fieldError) Unwrap() error { return e.err }

// Extensions implements the graphql-go resolver error extension hook.
func (e *fieldError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if e.status != 0 {
		ext["status"] = e.status
	}
	return ext
}

// newFieldError classifies err for the read path. graphql-go only reads
// extensions off the returned value itself, so resolvers return this
// directly rather than wrapping it.
func newFieldError(err error) error {
	if err == nil {
		return nil
	}

	fe := &fieldError{err: err, code: CodeInternalError}

	var upErr *trackapi.UpstreamError
	switch {
	case errors.Is(err, trackapi.ErrInvalidID):
		fe.code = CodeBadUserInput
	case errors.As(err, &upErr):
		fe.status = upErr.StatusCode
		fe.code = CodeUpstreamError
		if upErr.StatusCode == http.StatusNotFound {
			fe.code = CodeNotFound
		}
	case errors.Is(err, trackapi.ErrNotFound):
		fe.code = CodeNotFound
	}
	return fe
}
