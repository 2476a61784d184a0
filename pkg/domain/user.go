package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. The organization is set at creation and
// never changes afterwards; tasks may only reference users of the same
// organization.
type User struct {
	ID                  uuid.UUID
	Username            string
	OrganizationID      uuid.UUID
	Active              bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked returns true if the account is currently locked.
func (u *User) IsLocked() bool {
	if u.LockedUntil == nil {
		return false
	}
	return time.Now().Before(*u.LockedUntil)
}

// UserCredential stores the password hash separately from the user profile.
type UserCredential struct {
	UserID            uuid.UUID
	PasswordHash      string
	PasswordUpdatedAt time.Time
}
