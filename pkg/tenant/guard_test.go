package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
)

type fakeUserLookup struct {
	users map[uuid.UUID]*domain.User
}

func (f *fakeUserLookup) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func TestGuard_SameOrganization(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	sameOrgUser := &domain.User{ID: uuid.New(), OrganizationID: orgA, Active: true}
	otherOrgUser := &domain.User{ID: uuid.New(), OrganizationID: orgB, Active: true}
	inactiveUser := &domain.User{ID: uuid.New(), OrganizationID: orgA, Active: false}

	guard := NewGuard(&fakeUserLookup{users: map[uuid.UUID]*domain.User{
		sameOrgUser.ID:  sameOrgUser,
		otherOrgUser.ID: otherOrgUser,
		inactiveUser.ID: inactiveUser,
	}})

	tests := []struct {
		name    string
		userID  uuid.UUID
		wantErr error
	}{
		{name: "same organization", userID: sameOrgUser.ID, wantErr: nil},
		{name: "different organization", userID: otherOrgUser.ID, wantErr: domain.ErrCrossTenantReference},
		{name: "nonexistent user", userID: uuid.New(), wantErr: domain.ErrCrossTenantReference},
		{name: "inactive user", userID: inactiveUser.ID, wantErr: domain.ErrCrossTenantReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.SameOrganization(context.Background(), orgA, tt.userID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SameOrganization error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
