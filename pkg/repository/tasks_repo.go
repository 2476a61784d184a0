package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/tenant"
)

// TasksRepository handles task persistence. Every method scopes itself to
// the organization bound on the context. Reads fail closed: without a
// tenant context List returns nothing and GetByID reports not found.
// A task that exists in a different organization is indistinguishable
// from one that does not exist.
type TasksRepository struct {
	db *sql.DB
}

// NewTasksRepository creates a new tenant-scoped tasks repository.
func NewTasksRepository(db *sql.DB) *TasksRepository {
	return &TasksRepository{db: db}
}

const taskColumns = `id, title, description, completed, assigned_to, organization_id, deadline, priority, created_at`

func scanTask(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Completed,
		&task.AssignedTo, &task.OrganizationID,
		&task.Deadline, &task.Priority, &task.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the current organization's tasks ordered by deadline then
// priority, plus the total count for pagination. Without a tenant context
// it returns an empty page.
func (r *TasksRepository) List(ctx context.Context, limit, offset int) ([]*domain.Task, int, error) {
	org, ok := tenant.OrganizationFromContext(ctx)
	if !ok {
		return []*domain.Task{}, 0, nil
	}

	countQuery := `SELECT COUNT(*) FROM tasks WHERE organization_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, org.ID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE organization_id = $1
		ORDER BY deadline, priority
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, org.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.Completed,
			&task.AssignedTo, &task.OrganizationID,
			&task.Deadline, &task.Priority, &task.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, &task)
	}
	return tasks, total, rows.Err()
}

// GetByID retrieves a task of the current organization.
func (r *TasksRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	org, ok := tenant.OrganizationFromContext(ctx)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND organization_id = $2`
	return scanTask(r.db.QueryRowContext(ctx, query, id, org.ID))
}

// Create creates a task in the current organization. The organization is
// stamped from the tenant context when unset; a task carrying an explicit
// different organization is rejected.
func (r *TasksRepository) Create(ctx context.Context, task *domain.Task) error {
	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return err
	}
	if task.OrganizationID != uuid.Nil && task.OrganizationID != orgID {
		return domain.ErrCrossTenantReference
	}
	task.OrganizationID = orgID

	query := `
		INSERT INTO tasks (id, title, description, completed, assigned_to, organization_id, deadline, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Completed,
		task.AssignedTo, task.OrganizationID,
		task.Deadline, task.Priority, task.CreatedAt,
	)
	return err
}

// Update updates a task of the current organization. The organization
// column itself is never updated.
func (r *TasksRepository) Update(ctx context.Context, task *domain.Task) error {
	org, ok := tenant.OrganizationFromContext(ctx)
	if !ok {
		return domain.ErrTaskNotFound
	}

	query := `
		UPDATE tasks
		SET title = $3, description = $4, completed = $5, assigned_to = $6, deadline = $7, priority = $8
		WHERE id = $1 AND organization_id = $2
	`
	result, err := r.db.ExecContext(ctx, query,
		task.ID, org.ID,
		task.Title, task.Description, task.Completed,
		task.AssignedTo, task.Deadline, task.Priority,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete deletes a task of the current organization.
func (r *TasksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	org, ok := tenant.OrganizationFromContext(ctx)
	if !ok {
		return domain.ErrTaskNotFound
	}

	query := `DELETE FROM tasks WHERE id = $1 AND organization_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, org.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
