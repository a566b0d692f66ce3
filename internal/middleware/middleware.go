// Package middleware holds the Echo middleware and the global error handler.
//
// These cover the cross-cutting concerns of every request: request IDs,
// request-scoped logging, New Relic tracing, CORS, rate limiting and
// panic recovery.
package middleware
