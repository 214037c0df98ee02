// Package handler exposes the auth endpoints: register, login, and me.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"spacehub/backend/internal/identity/service"
	"spacehub/backend/internal/server/middleware"
	"spacehub/backend/internal/server/respond"
	"spacehub/backend/pkg/logger"
)

// Handler serves the auth endpoints over the auth service.
type Handler struct {
	auth *service.AuthService
}

// NewHandler returns a Handler over the given auth service.
func NewHandler(auth *service.AuthService) *Handler {
	return &Handler{auth: auth}
}

type registerRequest struct {
	OrgName  string `json:"orgName"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      string    `json:"userId"`
	OrgID       string    `json:"orgId"`
}

// Register creates an organization with its first admin user and returns an access token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req.OrgName, req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Organization name, a valid email, and a password of at least 8 characters are required")
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			respond.Error(c, http.StatusConflict, "EMAIL_ALREADY_REGISTERED", "Email is already registered")
		default:
			logger.ErrorContext(c.Request.Context(), "register failed", slog.String("error", err.Error()))
			respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}
		return
	}

	respond.Data(c, http.StatusCreated, authResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
		UserID:      res.UserID,
		OrgID:       res.OrgID,
	})
}

// Login verifies credentials and returns an access token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		logger.ErrorContext(c.Request.Context(), "login failed", slog.String("error", err.Error()))
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}

	respond.Data(c, http.StatusOK, authResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
		UserID:      res.UserID,
		OrgID:       res.OrgID,
	})
}

// Me returns the authenticated principal.
func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}
	respond.Data(c, http.StatusOK, gin.H{
		"id":      p.ID,
		"email":   p.Email,
		"name":    p.Name,
		"role":    p.Role,
		"orgId":   p.OrgID,
		"orgName": p.OrgName,
	})
}
