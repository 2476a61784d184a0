package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/repository"
)

// Handler handles user endpoints.
type Handler struct {
	logger *slog.Logger
	users  *repository.UsersRepository
}

// NewHandler creates a new users handler.
func NewHandler(logger *slog.Logger, users *repository.UsersRepository) *Handler {
	return &Handler{
		logger: logger,
		users:  users,
	}
}

// UserResponse represents a user in responses.
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateRequest represents a user creation request.
type CreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// List returns the users of the current organization.
// GET /v1/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:             u.ID,
			Username:       u.Username,
			OrganizationID: u.OrganizationID,
			CreatedAt:      u.CreatedAt,
		})
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// Create creates a user in the current organization.
// POST /v1/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cred := &domain.UserCredential{
		UserID:            user.ID,
		PasswordHash:      hash,
		PasswordUpdatedAt: now,
	}

	if err := h.users.Create(r.Context(), user, cred); err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameAlreadyExists):
			httputil.Error(w, http.StatusBadRequest, "username already exists")
		case errors.Is(err, domain.ErrNoTenantContext):
			httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		default:
			h.logger.Error("failed to create user", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	httputil.JSON(w, http.StatusCreated, UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		OrganizationID: user.OrganizationID,
		CreatedAt:      user.CreatedAt,
	})
}
