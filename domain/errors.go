package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Password reset errors
var (
	ErrOTPExpired           = errors.New("otp has expired")
	ErrOTPInvalid           = errors.New("invalid otp code")
	ErrOTPNotFound          = errors.New("otp not found")
	ErrConfirmationMismatch = errors.New("password confirmation does not match")
)

// Token errors
var (
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenRevoked         = errors.New("token has been revoked")
	ErrMissingSigningSecret = errors.New("token signing secret is not configured")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
)

// Resource errors
var (
	ErrBookNotFound = errors.New("book not found")
)

// ErrUpstream marks a store or mail collaborator that failed or timed out.
// Callers may retry; the service never does.
var ErrUpstream = errors.New("upstream service unavailable")
