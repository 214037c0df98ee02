// Package server builds the HTTP router and wires the authorization gate
// chains in front of the route handlers.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"spacehub/backend/internal/config"
	identityhandler "spacehub/backend/internal/identity/handler"
	"spacehub/backend/internal/platform/authz"
	"spacehub/backend/internal/server/middleware"
	spacehandler "spacehub/backend/internal/space/handler"
	taskhandler "spacehub/backend/internal/task/handler"
	userhandler "spacehub/backend/internal/user/handler"
)

const serviceName = "spacehub-backend"

// Handlers groups the route handlers served by the router.
type Handlers struct {
	Auth   *identityhandler.Handler
	Users  *userhandler.Handler
	Spaces *spacehandler.Handler
	Tasks  *taskhandler.Handler
}

// NewRouter builds the Gin engine: recovery, tracing, request logging, then
// the API routes with their gate chains.
func NewRouter(cfg *config.Config, h Handlers, tokens authz.CredentialVerifier, users authz.PrincipalSource, checker *authz.SpaceAccessChecker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.OTLPEndpoint != "" {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(middleware.Logging())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	authenticate := middleware.Authenticate(tokens, users, cfg.StoreTimeout())
	authed := middleware.Chain(authenticate)
	spaceRead := middleware.Chain(authenticate, middleware.RequireSpaceAccess(checker, authz.PermissionRead))
	spaceEdit := middleware.Chain(authenticate, middleware.RequireSpaceAccess(checker, authz.PermissionEdit))

	api := router.Group("/api")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/me", authed, h.Auth.Me)

	api.GET("/users/me", authed, h.Users.Get)
	api.PUT("/users/me", authed, h.Users.Update)

	api.POST("/spaces", authed, h.Spaces.Create)
	api.GET("/spaces", authed, h.Spaces.List)
	api.GET("/spaces/:spaceId", spaceRead, h.Spaces.Get)
	api.PUT("/spaces/:spaceId", spaceEdit, h.Spaces.Update)
	api.DELETE("/spaces/:spaceId",
		middleware.Chain(authenticate, middleware.RequireRole(authz.RoleAdmin), middleware.RequireSpaceAccess(checker, authz.PermissionEdit)),
		h.Spaces.Delete)

	api.GET("/spaces/:spaceId/members", spaceRead, h.Spaces.ListMembers)
	api.POST("/spaces/:spaceId/members", spaceEdit, h.Spaces.AddMember)
	api.DELETE("/spaces/:spaceId/members/:userId", spaceEdit, h.Spaces.RemoveMember)

	api.GET("/spaces/:spaceId/tasks", spaceRead, h.Tasks.List)
	api.POST("/spaces/:spaceId/tasks", spaceEdit, h.Tasks.Create)
	api.GET("/spaces/:spaceId/tasks/:taskId", spaceRead, h.Tasks.Get)
	api.PUT("/spaces/:spaceId/tasks/:taskId", spaceEdit, h.Tasks.Update)
	api.DELETE("/spaces/:spaceId/tasks/:taskId", spaceEdit, h.Tasks.Delete)

	return router
}
