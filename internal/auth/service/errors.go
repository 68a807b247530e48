package service

import "errors"

// Validation and issuance errors surfaced to the HTTP boundary. The
// boundary converts all of them into uniform unauthenticated responses;
// the distinct values exist for logging and tests.
var (
	ErrNoToken           = errors.New("no token provided")
	ErrRevoked           = errors.New("token has been revoked")
	ErrMisconfigured     = errors.New("token verification is not configured")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUserNotFound      = errors.New("user not found")
)
