// Package validation binds request bodies and runs payload validation.
//
// Payloads implement Validatable; their Validate method owns the business
// rules and its error text is what the client sees.
package validation
