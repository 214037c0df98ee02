// Package handler exposes the user profile endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"spacehub/backend/internal/server/middleware"
	"spacehub/backend/internal/server/respond"
	"spacehub/backend/internal/user/domain"
	"spacehub/backend/pkg/logger"
)

// UserRepo is the minimal user repository needed by the profile handler.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, bool, error)
	UpdateName(ctx context.Context, id, name string) (*domain.User, bool, error)
}

// Handler serves the profile endpoints.
type Handler struct {
	users UserRepo
}

// NewHandler returns a Handler over the given user repository.
func NewHandler(users UserRepo) *Handler {
	return &Handler{users: users}
}

func profileJSON(u *domain.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"role":      u.Role,
		"orgId":     u.OrgID,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

// Get returns the authenticated user's profile.
func (h *Handler) Get(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}
	u, found, err := h.users.GetByID(c.Request.Context(), p.ID)
	if err != nil {
		logger.ErrorContext(c.Request.Context(), "get profile failed", slog.String("error", err.Error()))
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}
	if !found {
		respond.Error(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
		return
	}
	respond.Data(c, http.StatusOK, profileJSON(u))
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// Update changes the authenticated user's display name.
func (h *Handler) Update(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}
	u, found, err := h.users.UpdateName(c.Request.Context(), p.ID, req.Name)
	if err != nil {
		logger.ErrorContext(c.Request.Context(), "update profile failed", slog.String("error", err.Error()))
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}
	if !found {
		respond.Error(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
		return
	}
	respond.Data(c, http.StatusOK, profileJSON(u))
}
