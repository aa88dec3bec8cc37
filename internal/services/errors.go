package services

import "errors"

// Error taxonomy for the gateway core. Every failure is terminal and scoped
// to a single request; handlers map these onto HTTP status codes.
var (
	// ErrInvalidRequest: a required identifying or content field is missing.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotRequested: OTP verification without a pending OTP.
	ErrNotRequested = errors.New("OTP not requested")
	// ErrInvalidCode: submitted OTP code does not match.
	ErrInvalidCode = errors.New("invalid OTP")
	// ErrExpired: the OTP code has expired.
	ErrExpired = errors.New("OTP expired")
	// ErrUnauthenticated: bad or missing bearer token.
	ErrUnauthenticated = errors.New("invalid or expired token")
	// ErrUnauthorized: instance credentials (public id + secret token) do not match.
	ErrUnauthorized = errors.New("invalid instance credentials")
	// ErrNotFound: unknown instance or message.
	ErrNotFound = errors.New("not found")
)
