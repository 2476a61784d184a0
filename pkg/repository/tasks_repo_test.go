package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/tenant"
)

// These tests cover the fail-closed paths that run before any SQL is
// issued. The repository is constructed without a database; reaching it
// would panic, so a passing test proves the query was never attempted.

func TestTasksRepository_ListWithoutTenantContext(t *testing.T) {
	repo := NewTasksRepository(nil)

	tasks, count, err := repo.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 0 || count != 0 {
		t.Errorf("List = %d tasks, count %d; want empty page", len(tasks), count)
	}
}

func TestTasksRepository_GetByIDWithoutTenantContext(t *testing.T) {
	repo := NewTasksRepository(nil)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestTasksRepository_CreateWithoutTenantContext(t *testing.T) {
	repo := NewTasksRepository(nil)

	task := &domain.Task{ID: uuid.New(), Title: "x", Deadline: time.Now()}
	err := repo.Create(context.Background(), task)
	if !errors.Is(err, domain.ErrNoTenantContext) {
		t.Errorf("error = %v, want ErrNoTenantContext", err)
	}
}

func TestTasksRepository_CreateRejectsForeignOrganization(t *testing.T) {
	repo := NewTasksRepository(nil)

	org := &domain.Organization{ID: uuid.New(), Name: "Rzabka"}
	ctx := tenant.WithOrganization(context.Background(), org)

	task := &domain.Task{
		ID:             uuid.New(),
		Title:          "x",
		OrganizationID: uuid.New(), // not the bound organization
		Deadline:       time.Now(),
	}
	err := repo.Create(ctx, task)
	if !errors.Is(err, domain.ErrCrossTenantReference) {
		t.Errorf("error = %v, want ErrCrossTenantReference", err)
	}
}

func TestTasksRepository_UpdateWithoutTenantContext(t *testing.T) {
	repo := NewTasksRepository(nil)

	task := &domain.Task{ID: uuid.New(), Title: "x", Deadline: time.Now()}
	err := repo.Update(context.Background(), task)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestTasksRepository_DeleteWithoutTenantContext(t *testing.T) {
	repo := NewTasksRepository(nil)

	err := repo.Delete(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestUsersRepository_FailClosedWithoutTenantContext(t *testing.T) {
	repo := NewUsersRepository(nil)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("List = %d users, want 0", len(users))
	}

	if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("GetByID error = %v, want ErrUserNotFound", err)
	}

	user := &domain.User{ID: uuid.New(), Username: "nowak", Active: true}
	cred := &domain.UserCredential{UserID: user.ID, PasswordHash: "irrelevant"}
	if err := repo.Create(context.Background(), user, cred); !errors.Is(err, domain.ErrNoTenantContext) {
		t.Errorf("Create error = %v, want ErrNoTenantContext", err)
	}
}

func TestUsersRepository_CreateRejectsForeignOrganization(t *testing.T) {
	repo := NewUsersRepository(nil)

	org := &domain.Organization{ID: uuid.New(), Name: "Rzabka"}
	ctx := tenant.WithOrganization(context.Background(), org)

	user := &domain.User{ID: uuid.New(), Username: "nowak", OrganizationID: uuid.New(), Active: true}
	cred := &domain.UserCredential{UserID: user.ID, PasswordHash: "irrelevant"}
	err := repo.Create(ctx, user, cred)
	if !errors.Is(err, domain.ErrCrossTenantReference) {
		t.Errorf("error = %v, want ErrCrossTenantReference", err)
	}
}
