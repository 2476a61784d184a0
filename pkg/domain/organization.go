package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant boundary. Every user and task belongs to
// exactly one organization, and no request may read or write across it.
type Organization struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
