package tasks

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/task"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// Handler handles task endpoints.
type Handler struct {
	logger *slog.Logger
	tasks  *task.Service
}

// NewHandler creates a new tasks handler.
func NewHandler(logger *slog.Logger, tasks *task.Service) *Handler {
	return &Handler{
		logger: logger,
		tasks:  tasks,
	}
}

// TaskRequest represents the writable task fields.
type TaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	Deadline    time.Time  `json:"deadline"`
	Priority    int        `json:"priority"`
}

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Completed      bool       `json:"completed"`
	AssignedTo     *uuid.UUID `json:"assigned_to,omitempty"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	Deadline       time.Time  `json:"deadline"`
	Priority       int        `json:"priority"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ListResponse is a page of tasks.
type ListResponse struct {
	Items []TaskResponse `json:"items"`
	Count int            `json:"count"`
}

func toResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Completed:      t.Completed,
		AssignedTo:     t.AssignedTo,
		OrganizationID: t.OrganizationID,
		Deadline:       t.Deadline,
		Priority:       t.Priority,
		CreatedAt:      t.CreatedAt,
	}
}

// List returns the current organization's tasks.
// GET /v1/tasks?limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, count, err := h.tasks.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	resp := ListResponse{Items: make([]TaskResponse, 0, len(items)), Count: count}
	for _, t := range items {
		resp.Items = append(resp.Items, toResponse(t))
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// Get returns a single task.
// GET /v1/tasks/{taskID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "task not found")
		return
	}

	t, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		h.writeTaskError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, toResponse(t))
}

// Create creates a task in the current organization.
// POST /v1/tasks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := validate(req); !ok {
		httputil.Error(w, http.StatusUnprocessableEntity, msg)
		return
	}

	t, err := h.tasks.Create(r.Context(), task.Input{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		AssignedTo:  req.AssignedTo,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
	})
	if err != nil {
		h.writeTaskError(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, toResponse(t))
}

// Update replaces the writable fields of a task.
// PUT /v1/tasks/{taskID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "task not found")
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := validate(req); !ok {
		httputil.Error(w, http.StatusUnprocessableEntity, msg)
		return
	}

	t, err := h.tasks.Update(r.Context(), id, task.Input{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		AssignedTo:  req.AssignedTo,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
	})
	if err != nil {
		h.writeTaskError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, toResponse(t))
}

// Delete deletes a task.
// DELETE /v1/tasks/{taskID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		h.writeTaskError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (h *Handler) writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		httputil.Error(w, http.StatusNotFound, "task not found")
	case errors.Is(err, domain.ErrCrossTenantReference):
		httputil.Error(w, http.StatusForbidden, "assigned user does not belong to your organization")
	case errors.Is(err, domain.ErrNoTenantContext):
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
	default:
		h.logger.Error("task operation failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func validate(req TaskRequest) (string, bool) {
	if req.Title == "" {
		return "title is required", false
	}
	if req.Deadline.IsZero() {
		return "deadline is required", false
	}
	return "", true
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
