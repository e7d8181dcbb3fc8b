package domain

import "errors"

// Sentinel errors returned by the core services. The API layer maps each to
// exactly one HTTP status; anything else is treated as an internal failure.
var (
	// ErrUnauthenticated means no usable session: no token was presented,
	// or the token's account no longer exists.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidToken covers bad signature, expiry, wrong signing key, and
	// token-kind mismatch. The causes are deliberately indistinguishable.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSessionInvalidated means a refresh token that verifies
	// cryptographically no longer matches the stored session (rotated away
	// or cleared by logout).
	ErrSessionInvalidated = errors.New("refresh token expired or already used")

	// ErrInvalidCredentials means the password check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput means a request was structurally valid but missing
	// required fields or values.
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")

	ErrVideoNotFound = errors.New("video not found")
)
