// Package errs defines the error type returned to API clients.
//
// Handlers and middleware return *HTTPError values; the global error
// handler turns them into a status code and a `{ "error": "..." }` body.
package errs
