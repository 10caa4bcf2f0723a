package api

// ErrorType represents the classification of errors returned via HTTP headers.
type ErrorType string

// HeaderErrorType is the HTTP header key which should be used to convey API error types.
const HeaderErrorType = "Radixd-Error-Type"

const (
	// RateLimited indicates the request was refused because the API request rate was exceeded.
	RateLimited ErrorType = "rate-limited"
)
