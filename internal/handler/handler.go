// Package handler is the HTTP layer between the router and the services.
//
// Typed endpoints go through Handle, which binds and validates the body
// before calling the service. Errors are returned, never written, so the
// global error handler owns the `{ "error": ... }` response shape.
package handler
