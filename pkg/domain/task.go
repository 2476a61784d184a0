package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task belongs to exactly one organization and may be assigned to a user
// of that same organization. Deleting the assignee clears the assignment;
// deleting the organization deletes the task.
type Task struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Completed      bool
	AssignedTo     *uuid.UUID
	OrganizationID uuid.UUID
	Deadline       time.Time
	Priority       int
	CreatedAt      time.Time
}
