// Command taskhive-seed populates the database with sample organizations,
// users, and tasks for local development. It is administrative tooling:
// it talks to the unscoped organizations repository directly and binds a
// tenant context by hand for each organization it fills, something no
// request handler can do.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/repository"
	"github.com/taskhive/taskhive/pkg/tenant"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	orgsRepo := repository.NewOrganizationsRepository(db)
	usersRepo := repository.NewUsersRepository(db)
	userDirectory := repository.NewUserDirectory(db)
	tasksRepo := repository.NewTasksRepository(db)

	ctx := context.Background()

	rzabka, err := ensureOrganization(ctx, orgsRepo, "Rzabka")
	if err != nil {
		logger.Error("failed to create organization", "name", "Rzabka", "error", err)
		os.Exit(1)
	}
	diino, err := ensureOrganization(ctx, orgsRepo, "Diino")
	if err != nil {
		logger.Error("failed to create organization", "name", "Diino", "error", err)
		os.Exit(1)
	}
	logger.Info("organizations ready", "names", []string{rzabka.Name, diino.Name})

	// All user and task writes below go through the tenant-scoped
	// repositories with the organization bound explicitly.
	rzabkaCtx := tenant.WithOrganization(ctx, rzabka)
	diinoCtx := tenant.WithOrganization(ctx, diino)

	janusz, err := ensureUser(rzabkaCtx, usersRepo, userDirectory, "janusz", "password123")
	if err != nil {
		logger.Error("failed to create user", "username", "janusz", "error", err)
		os.Exit(1)
	}
	if _, err := ensureUser(rzabkaCtx, usersRepo, userDirectory, "grazyna", "password123"); err != nil {
		logger.Error("failed to create user", "username", "grazyna", "error", err)
		os.Exit(1)
	}
	pawel, err := ensureUser(diinoCtx, usersRepo, userDirectory, "pawel", "password123")
	if err != nil {
		logger.Error("failed to create user", "username", "pawel", "error", err)
		os.Exit(1)
	}

	deadline := time.Now().Add(7 * 24 * time.Hour)
	seedTasks := []struct {
		ctx      context.Context
		assignee *uuid.UUID
		title    string
		priority int
	}{
		{rzabkaCtx, idPtr(janusz), "Prepare quarterly report", 1},
		{rzabkaCtx, nil, "Review onboarding checklist", 2},
		{diinoCtx, idPtr(pawel), "Ship billing integration", 0},
	}
	for _, s := range seedTasks {
		task := &domain.Task{
			ID:          uuid.New(),
			Title:       s.title,
			Description: "Seeded sample task",
			AssignedTo:  s.assignee,
			Deadline:    deadline,
			Priority:    s.priority,
			CreatedAt:   time.Now(),
		}
		if err := tasksRepo.Create(s.ctx, task); err != nil {
			logger.Error("failed to create task", "title", s.title, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("seeding complete")
}

func ensureOrganization(ctx context.Context, repo *repository.OrganizationsRepository, name string) (*domain.Organization, error) {
	org, err := repo.GetByName(ctx, name)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, domain.ErrOrganizationNotFound) {
		return nil, err
	}

	org = &domain.Organization{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func ensureUser(ctx context.Context, repo *repository.UsersRepository, directory *repository.UserDirectory, username, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.New(),
		Username:  username,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cred := &domain.UserCredential{
		UserID:            user.ID,
		PasswordHash:      hash,
		PasswordUpdatedAt: now,
	}

	err = repo.Create(ctx, user, cred)
	if errors.Is(err, domain.ErrUsernameAlreadyExists) {
		return directory.GetByUsername(ctx, username)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func idPtr(u *domain.User) *uuid.UUID {
	if u == nil {
		return nil
	}
	id := u.ID
	return &id
}
