package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/tenant"
)

// UsersRepository handles user persistence for tenant-facing request
// handlers. Every method scopes itself to the organization bound on the
// context: reads outside a tenant context come back empty or not-found,
// writes fail with domain.ErrNoTenantContext.
type UsersRepository struct {
	db *sql.DB
}

// NewUsersRepository creates a new tenant-scoped users repository.
func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// List returns the users of the current organization. Without a tenant
// context it returns an empty list, never all organizations' users.
func (r *UsersRepository) List(ctx context.Context) ([]*domain.User, error) {
	org, ok := tenant.OrganizationFromContext(ctx)
	if !ok {
		return []*domain.User{}, nil
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE organization_id = $1
		ORDER BY username
	`
	rows, err := r.db.QueryContext(ctx, query, org.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.OrganizationID, &user.Active,
			&user.FailedLoginAttempts, &user.LockedUntil,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// GetByID retrieves a user of the current organization. A user that
// exists in a different organization is reported as not found.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	org, ok := tenant.OrganizationFromContext(ctx)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND organization_id = $2`
	return scanUser(r.db.QueryRowContext(ctx, query, id, org.ID))
}

// Create creates a user and their credential in the current organization.
// The organization is stamped from the tenant context; a user carrying an
// explicit different organization is rejected.
func (r *UsersRepository) Create(ctx context.Context, user *domain.User, cred *domain.UserCredential) error {
	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	if user.OrganizationID != uuid.Nil && user.OrganizationID != orgID {
		return domain.ErrCrossTenantReference
	}
	user.OrganizationID = orgID

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, user.Username).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrUsernameAlreadyExists
	}

	return Tx(ctx, r.db, func(tx *sql.Tx) error {
		insertUser := `
			INSERT INTO users (id, username, organization_id, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.ExecContext(ctx, insertUser,
			user.ID, user.Username, user.OrganizationID, user.Active,
			user.CreatedAt, user.UpdatedAt,
		); err != nil {
			return err
		}

		insertCred := `
			INSERT INTO user_credentials (user_id, password_hash, password_updated_at)
			VALUES ($1, $2, $3)
		`
		_, err := tx.ExecContext(ctx, insertCred,
			cred.UserID, cred.PasswordHash, cred.PasswordUpdatedAt,
		)
		return err
	})
}
