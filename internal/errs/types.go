package errs

import (
	"net/http"
	"strings"
)

// HTTPError is the error type understood by the global error handler.
//
// Only Message is serialized, under the "error" key:
//
//	{ "error": "loanAmount must be a number between 80,000 and 2,000,000." }
//
// Code and Status stay server side and end up in logs and traces.
type HTTPError struct {
	Code    string `json:"-"`
	Message string `json:"error"`
	Status  int    `json:"-"`

	// Internal is the underlying cause, kept for logging only.
	Internal error `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap returns the internal cause, if any.
func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// WithInternal returns a copy of e that wraps err.
func (e *HTTPError) WithInternal(err error) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  e.Message,
		Status:   e.Status,
		Internal: err,
	}
}

// Is reports whether target is also an *HTTPError. It does not compare
// codes or statuses.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}
