package orgs

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/pkg/tenant"
)

// Handler handles organization endpoints.
type Handler struct{}

// NewHandler creates a new organizations handler.
func NewHandler() *Handler {
	return &Handler{}
}

// OrganizationResponse represents an organization in responses.
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GetCurrent returns the caller's organization.
// GET /v1/organization
func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	org, ok := tenant.OrganizationFromContext(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	httputil.JSON(w, http.StatusOK, OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
	})
}
