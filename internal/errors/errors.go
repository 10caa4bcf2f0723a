// Package errors defines domain-level errors used throughout the application.
// These errors represent request-level failures and are mapped to appropriate HTTP status codes at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/daemon/api_server.go)
// 2. Add a test case to TestMapError (internal/daemon/api_server_test.go)
// 3. Consider if existing handler tests need updates
//
// Conversion failures (missing numeral, out of range radix etc.) are not listed here.
// They are recoverable outcomes represented by *conversion.Error and are spoken back to the user.
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// This typically results from body decoding or schema validation failures.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidApplicationID indicates a skill request addressed to an application other than the configured one.
	// Recommended to map to HTTP 403 Forbidden.
	ErrInvalidApplicationID = errors.New("invalid application id")

	// ErrUnknownIntent indicates an intent request for an intent the skill does not handle.
	// Recommended to map to HTTP 400 Bad Request.
	ErrUnknownIntent = errors.New("unknown intent")

	// ErrUnsupportedRequestType indicates a skill request whose type is not routed by the skill.
	// Recommended to map to HTTP 400 Bad Request.
	ErrUnsupportedRequestType = errors.New("unsupported request type")

	// ErrStaleRequest indicates a skill request whose timestamp is outside the accepted tolerance.
	// Recommended to map to HTTP 400 Bad Request.
	ErrStaleRequest = errors.New("request timestamp outside tolerance")

	// ErrRateLimited indicates the API is receiving more requests than it is configured to serve.
	// Recommended to map to HTTP 429 Too Many Requests.
	ErrRateLimited = errors.New("rate limit exceeded")
)
