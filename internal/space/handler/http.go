// Package handler exposes the space CRUD and member endpoints. Routes behind
// the space access gate can additionally consult the attached Decision.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	memberdomain "spacehub/backend/internal/membership/domain"
	"spacehub/backend/internal/server/middleware"
	"spacehub/backend/internal/server/respond"
	"spacehub/backend/internal/space/domain"
	"spacehub/backend/pkg/logger"
)

// SpaceRepo is the space persistence needed by this handler.
type SpaceRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Space, bool, error)
	ListByOrg(ctx context.Context, orgID string) ([]*domain.Space, error)
	Create(ctx context.Context, s *domain.Space) error
	Update(ctx context.Context, s *domain.Space) (*domain.Space, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MemberRepo is the membership persistence needed by this handler.
type MemberRepo interface {
	ListBySpace(ctx context.Context, spaceID string) ([]*memberdomain.Membership, error)
	Create(ctx context.Context, m *memberdomain.Membership) error
	DeleteBySpaceAndUser(ctx context.Context, spaceID, userID string) (bool, error)
}

// Handler serves the space endpoints.
type Handler struct {
	spaces  SpaceRepo
	members MemberRepo
}

// NewHandler returns a Handler over the given repositories.
func NewHandler(spaces SpaceRepo, members MemberRepo) *Handler {
	return &Handler{spaces: spaces, members: members}
}

func spaceJSON(s *domain.Space) gin.H {
	return gin.H{
		"id":          s.ID,
		"name":        s.Name,
		"description": s.Description,
		"orgId":       s.OrgID,
		"createdBy":   s.CreatedBy,
		"createdAt":   s.CreatedAt,
		"updatedAt":   s.UpdatedAt,
	}
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	logger.ErrorContext(c.Request.Context(), msg, slog.String("error", err.Error()))
	respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}

type createSpaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create creates a space owned by the authenticated principal in its org.
func (h *Handler) Create(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}
	var req createSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	now := time.Now().UTC()
	s := &domain.Space{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		OrgID:       p.OrgID,
		CreatedBy:   p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.spaces.Create(c.Request.Context(), s); err != nil {
		h.internalError(c, "create space failed", err)
		return
	}
	respond.Data(c, http.StatusCreated, spaceJSON(s))
}

// List returns the spaces of the principal's organization.
func (h *Handler) List(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}
	spaces, err := h.spaces.ListByOrg(c.Request.Context(), p.OrgID)
	if err != nil {
		h.internalError(c, "list spaces failed", err)
		return
	}
	out := make([]gin.H, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, spaceJSON(s))
	}
	respond.Data(c, http.StatusOK, out)
}

// Get returns a single space. The access gate has already run; the Decision
// is included for the client's fine-grained checks.
func (h *Handler) Get(c *gin.Context) {
	s, found, err := h.spaces.GetByID(c.Request.Context(), c.Param("spaceId"))
	if err != nil {
		h.internalError(c, "get space failed", err)
		return
	}
	if !found {
		respond.Error(c, http.StatusNotFound, "SPACE_NOT_FOUND", "Space not found")
		return
	}
	body := spaceJSON(s)
	if d, ok := middleware.DecisionFrom(c); ok {
		body["access"] = d
	}
	respond.Data(c, http.StatusOK, body)
}

type updateSpaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Update changes a space's name and description.
func (h *Handler) Update(c *gin.Context) {
	var req updateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}
	s := &domain.Space{ID: c.Param("spaceId"), Name: req.Name, Description: req.Description}
	updated, found, err := h.spaces.Update(c.Request.Context(), s)
	if err != nil {
		h.internalError(c, "update space failed", err)
		return
	}
	if !found {
		respond.Error(c, http.StatusNotFound, "SPACE_NOT_FOUND", "Space not found")
		return
	}
	respond.Data(c, http.StatusOK, spaceJSON(updated))
}

// Delete removes a space and, via cascade, its members and tasks.
func (h *Handler) Delete(c *gin.Context) {
	found, err := h.spaces.Delete(c.Request.Context(), c.Param("spaceId"))
	if err != nil {
		h.internalError(c, "delete space failed", err)
		return
	}
	if !found {
		respond.Error(c, http.StatusNotFound, "SPACE_NOT_FOUND", "Space not found")
		return
	}
	respond.Data(c, http.StatusOK, gin.H{"deleted": true})
}

// ListMembers returns the membership rows of a space.
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.members.ListBySpace(c.Request.Context(), c.Param("spaceId"))
	if err != nil {
		h.internalError(c, "list members failed", err)
		return
	}
	out := make([]gin.H, 0, len(members))
	for _, m := range members {
		out = append(out, gin.H{
			"id":          m.ID,
			"spaceId":     m.SpaceID,
			"userId":      m.UserID,
			"role":        m.Role,
			"permissions": m.Permissions,
			"createdAt":   m.CreatedAt,
		})
	}
	respond.Data(c, http.StatusOK, out)
}

type addMemberRequest struct {
	UserID      string          `json:"userId" binding:"required"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}

// AddMember grants a user a role and permission set on a space.
func (h *Handler) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "userId is required")
		return
	}
	role := memberdomain.Role(req.Role)
	if role == "" {
		role = memberdomain.RoleViewer
	}
	switch role {
	case memberdomain.RoleOwner, memberdomain.RoleEditor, memberdomain.RoleViewer:
	default:
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid role")
		return
	}

	m := &memberdomain.Membership{
		ID:          uuid.NewString(),
		SpaceID:     c.Param("spaceId"),
		UserID:      req.UserID,
		Role:        role,
		Permissions: req.Permissions,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.members.Create(c.Request.Context(), m); err != nil {
		h.internalError(c, "add member failed", err)
		return
	}
	respond.Data(c, http.StatusCreated, gin.H{
		"id":          m.ID,
		"spaceId":     m.SpaceID,
		"userId":      m.UserID,
		"role":        m.Role,
		"permissions": m.Permissions,
	})
}

// RemoveMember revokes a user's membership on a space.
func (h *Handler) RemoveMember(c *gin.Context) {
	found, err := h.members.DeleteBySpaceAndUser(c.Request.Context(), c.Param("spaceId"), c.Param("userId"))
	if err != nil {
		h.internalError(c, "remove member failed", err)
		return
	}
	if !found {
		respond.Error(c, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member not found")
		return
	}
	respond.Data(c, http.StatusOK, gin.H{"deleted": true})
}
