// Package task implements task operations on top of the tenant-scoped
// store, enforcing the cross-organization reference rules the store
// itself cannot see.
package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/tenant"
)

// Store is the tenant-scoped task store the service writes through.
// Implementations filter every call by the organization on the context.
type Store interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Task, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Input carries the writable task fields for create and update.
type Input struct {
	Title       string
	Description string
	Completed   bool
	AssignedTo  *uuid.UUID
	Deadline    time.Time
	Priority    int
}

// Service handles task reads and writes for the current organization.
type Service struct {
	tasks Store
	guard *tenant.Guard
}

// NewService creates a new task service.
func NewService(tasks Store, guard *tenant.Guard) *Service {
	return &Service{tasks: tasks, guard: guard}
}

// List returns a page of the current organization's tasks and the total
// count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.Task, int, error) {
	return s.tasks.List(ctx, limit, offset)
}

// Get retrieves a task of the current organization.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// Create creates a task in the current organization. An assignee from a
// different organization fails the whole call before anything is written.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Task, error) {
	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	if in.AssignedTo != nil {
		if err := s.guard.SameOrganization(ctx, orgID, *in.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &domain.Task{
		ID:             uuid.New(),
		Title:          in.Title,
		Description:    in.Description,
		Completed:      in.Completed,
		AssignedTo:     in.AssignedTo,
		OrganizationID: orgID,
		Deadline:       in.Deadline,
		Priority:       in.Priority,
		CreatedAt:      time.Now(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update replaces the writable fields of a task in the current
// organization. The assignee is re-validated on every update, whether or
// not it changed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*domain.Task, error) {
	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.AssignedTo != nil {
		if err := s.guard.SameOrganization(ctx, orgID, *in.AssignedTo); err != nil {
			return nil, err
		}
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Completed = in.Completed
	task.AssignedTo = in.AssignedTo
	task.Deadline = in.Deadline
	task.Priority = in.Priority

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete deletes a task of the current organization.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tasks.Delete(ctx, id)
}
