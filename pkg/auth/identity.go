package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
)

// UserStore loads users by ID across all organizations. The resolver runs
// before any tenant context exists, so the lookup cannot be tenant-scoped.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// OrganizationStore loads organizations by ID.
type OrganizationStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
}

// IdentityService resolves a decoded token's user ID to a user and their
// organization. Inactive users resolve exactly like nonexistent ones, so
// the outcome leaks nothing about which of the two it was.
type IdentityService struct {
	users UserStore
	orgs  OrganizationStore
}

// NewIdentityService creates a new identity service.
func NewIdentityService(users UserStore, orgs OrganizationStore) *IdentityService {
	return &IdentityService{users: users, orgs: orgs}
}

// Resolve loads the user and their organization. The organization is
// loaded eagerly: a user whose organization cannot be resolved must not
// reach any handler.
func (s *IdentityService) Resolve(ctx context.Context, userID uuid.UUID) (*domain.User, *domain.Organization, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}
	if !user.Active {
		return nil, nil, domain.ErrUserNotFound
	}

	org, err := s.orgs.GetByID(ctx, user.OrganizationID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}

	return user, org, nil
}
