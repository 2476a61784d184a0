package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
)

// UserLoginStore provides the lookups and counters the login flow needs.
type UserLoginStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	IncrementFailedLoginAttempts(ctx context.Context, userID uuid.UUID, lockoutDuration time.Duration, maxAttempts int) error
	ResetFailedLoginAttempts(ctx context.Context, userID uuid.UUID) error
}

// CredentialStore loads password credentials by user ID.
type CredentialStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserCredential, error)
}

// LoginService verifies username/password credentials at login. It feeds
// the token service; it plays no part in per-request authentication.
type LoginService struct {
	users UserLoginStore
	creds CredentialStore
}

// NewLoginService creates a new login service.
func NewLoginService(users UserLoginStore, creds CredentialStore) *LoginService {
	return &LoginService{users: users, creds: creds}
}

// Authenticate verifies username and password and returns the user ID on
// success. Unknown users, inactive users, and wrong passwords all return
// domain.ErrInvalidCredentials. Accounts lock after 5 failed attempts for
// 15 minutes.
func (s *LoginService) Authenticate(ctx context.Context, username, password string) (uuid.UUID, error) {
	const (
		maxFailedAttempts = 5
		lockoutDuration   = 15 * time.Minute
	)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return uuid.Nil, domain.ErrInvalidCredentials
		}
		return uuid.Nil, err
	}

	if !user.Active {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	if user.IsLocked() {
		return uuid.Nil, domain.ErrAccountLocked
	}

	cred, err := s.creds.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return uuid.Nil, domain.ErrInvalidCredentials
		}
		return uuid.Nil, err
	}

	if !VerifyPassword(password, cred.PasswordHash) {
		_ = s.users.IncrementFailedLoginAttempts(ctx, user.ID, lockoutDuration, maxFailedAttempts)
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		_ = s.users.ResetFailedLoginAttempts(ctx, user.ID)
	}

	return user.ID, nil
}
