package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
)

// UserLookup loads a user by ID regardless of organization. The guard
// needs the cross-organization view to decide whether a reference crosses
// the boundary; it never exposes the looked-up user to the caller.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Guard validates that foreign references between entities stay within
// one organization. It runs on every write that sets such a reference,
// on create and update alike.
type Guard struct {
	users UserLookup
}

// NewGuard creates a new cross-tenant reference guard.
func NewGuard(users UserLookup) *Guard {
	return &Guard{users: users}
}

// SameOrganization checks that the referenced user belongs to orgID.
// A nonexistent or inactive user fails the same way as a foreign one, so
// the error does not reveal whether the ID exists elsewhere.
func (g *Guard) SameOrganization(ctx context.Context, orgID, userID uuid.UUID) error {
	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrCrossTenantReference
		}
		return err
	}
	if !user.Active || user.OrganizationID != orgID {
		return domain.ErrCrossTenantReference
	}
	return nil
}
