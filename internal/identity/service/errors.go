package service

import "errors"

var (
	// ErrValidation means required input was missing or empty. Detected
	// before any store access.
	ErrValidation = errors.New("missing required fields")

	// ErrConflict means the store rejected a write because the subdomain or
	// tenant-scoped email already exists.
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// Keeping them indistinguishable prevents user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTenantSuspended is deliberately distinct from invalid credentials:
	// it reveals account state, not whether a credential guess was close.
	ErrTenantSuspended = errors.New("tenant suspended")
)
