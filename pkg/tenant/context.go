// Package tenant carries the current organization of a request and guards
// cross-organization references.
//
// The organization is bound once per request by the authentication
// middleware and travels on the request's context.Context. Because the
// value lives on the request context it is per-request by construction:
// concurrent requests cannot observe each other's organization, and the
// value is torn down with the request on every exit path, including
// panics and cancellation. There is no process-wide slot to clear.
package tenant

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/domain"
)

type ctxKey struct{}

// WithOrganization returns a context carrying org as the current
// organization. Called exactly once per authenticated request, by the
// authentication middleware after the caller's identity is resolved.
func WithOrganization(ctx context.Context, org *domain.Organization) context.Context {
	return context.WithValue(ctx, ctxKey{}, org)
}

// OrganizationFromContext returns the current organization, or false if
// none is bound (unauthenticated path, background job, test without setup).
func OrganizationFromContext(ctx context.Context) (*domain.Organization, bool) {
	org, ok := ctx.Value(ctxKey{}).(*domain.Organization)
	return org, ok
}

// OrganizationID returns the current organization's ID, or
// domain.ErrNoTenantContext when none is bound.
func OrganizationID(ctx context.Context) (uuid.UUID, error) {
	org, ok := OrganizationFromContext(ctx)
	if !ok {
		return uuid.Nil, domain.ErrNoTenantContext
	}
	return org.ID, nil
}
