package domain

import "errors"

// Authentication errors. All four collapse to a single 401 at the API
// boundary; the distinction exists for internal diagnostics only.
var (
	ErrMissingCredential  = errors.New("missing credential")
	ErrMalformedToken     = errors.New("malformed token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked due to too many failed login attempts")
)

// Tenant scoping errors.
var (
	ErrNoTenantContext      = errors.New("no tenant context bound")
	ErrCrossTenantReference = errors.New("referenced entity belongs to a different organization")
)

// Entity errors. ErrTaskNotFound is also returned when the task exists in
// another organization; cross-tenant existence must not be observable.
var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)
