// Package handler exposes the task CRUD endpoints, all nested under a space
// and guarded by the space access gate.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"spacehub/backend/internal/server/middleware"
	"spacehub/backend/internal/server/respond"
	"spacehub/backend/internal/task/domain"
	"spacehub/backend/pkg/logger"
)

// TaskRepo is the task persistence needed by this handler.
type TaskRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Task, bool, error)
	ListBySpace(ctx context.Context, spaceID string) ([]*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) (*domain.Task, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Handler serves the task endpoints.
type Handler struct {
	tasks TaskRepo
}

// NewHandler returns a Handler over the given task repository.
func NewHandler(tasks TaskRepo) *Handler {
	return &Handler{tasks: tasks}
}

func taskJSON(t *domain.Task) gin.H {
	return gin.H{
		"id":          t.ID,
		"spaceId":     t.SpaceID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"assigneeId":  t.AssigneeID,
		"createdBy":   t.CreatedBy,
		"createdAt":   t.CreatedAt,
		"updatedAt":   t.UpdatedAt,
	}
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	logger.ErrorContext(c.Request.Context(), msg, slog.String("error", err.Error()))
	respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}

// taskInSpace loads the task and checks it belongs to the route's space.
func (h *Handler) taskInSpace(c *gin.Context) (*domain.Task, bool) {
	t, found, err := h.tasks.GetByID(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		h.internalError(c, "get task failed", err)
		return nil, false
	}
	if !found || t.SpaceID != c.Param("spaceId") {
		respond.Error(c, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found")
		return nil, false
	}
	return t, true
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssigneeID  string `json:"assigneeId"`
}

// Create adds a task to the space.
func (h *Handler) Create(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title is required")
		return
	}

	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.NewString(),
		SpaceID:     c.Param("spaceId"),
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.Status(req.Status),
		AssigneeID:  req.AssigneeID,
		CreatedBy:   p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.tasks.Create(c.Request.Context(), t); err != nil {
		h.internalError(c, "create task failed", err)
		return
	}
	respond.Data(c, http.StatusCreated, taskJSON(t))
}

// List returns the tasks of the space.
func (h *Handler) List(c *gin.Context) {
	tasks, err := h.tasks.ListBySpace(c.Request.Context(), c.Param("spaceId"))
	if err != nil {
		h.internalError(c, "list tasks failed", err)
		return
	}
	out := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskJSON(t))
	}
	respond.Data(c, http.StatusOK, out)
}

// Get returns a single task.
func (h *Handler) Get(c *gin.Context) {
	t, ok := h.taskInSpace(c)
	if !ok {
		return
	}
	respond.Data(c, http.StatusOK, taskJSON(t))
}

type updateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssigneeID  string `json:"assigneeId"`
}

// Update changes a task's mutable fields.
func (h *Handler) Update(c *gin.Context) {
	t, ok := h.taskInSpace(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title is required")
		return
	}

	t.Title = req.Title
	t.Description = req.Description
	if req.Status != "" {
		t.Status = domain.Status(req.Status)
	}
	t.AssigneeID = req.AssigneeID
	if err := t.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, found, err := h.tasks.Update(c.Request.Context(), t)
	if err != nil {
		h.internalError(c, "update task failed", err)
		return
	}
	if !found {
		respond.Error(c, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found")
		return
	}
	respond.Data(c, http.StatusOK, taskJSON(updated))
}

// Delete removes a task.
func (h *Handler) Delete(c *gin.Context) {
	t, ok := h.taskInSpace(c)
	if !ok {
		return
	}
	found, err := h.tasks.Delete(c.Request.Context(), t.ID)
	if err != nil {
		h.internalError(c, "delete task failed", err)
		return
	}
	if !found {
		respond.Error(c, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found")
		return
	}
	respond.Data(c, http.StatusOK, gin.H{"deleted": true})
}
