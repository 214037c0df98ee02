package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacehub/backend/internal/cache"
	"spacehub/backend/internal/config"
	"spacehub/backend/internal/db"
	identityhandler "spacehub/backend/internal/identity/handler"
	identityservice "spacehub/backend/internal/identity/service"
	membershiprepo "spacehub/backend/internal/membership/repository"
	orgrepo "spacehub/backend/internal/organization/repository"
	"spacehub/backend/internal/platform/authz"
	"spacehub/backend/internal/security"
	"spacehub/backend/internal/server"
	spacehandler "spacehub/backend/internal/space/handler"
	spacerepo "spacehub/backend/internal/space/repository"
	taskhandler "spacehub/backend/internal/task/handler"
	taskrepo "spacehub/backend/internal/task/repository"
	"spacehub/backend/internal/telemetry/otel"
	userhandler "spacehub/backend/internal/user/handler"
	userrepo "spacehub/backend/internal/user/repository"
	"spacehub/backend/pkg/logger"
)

const serviceName = "spacehub-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, serviceName)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.WarnContext(shutdownCtx, "otel shutdown", slog.Any("error", err))
		}
	}()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	orgs := orgrepo.NewPostgresRepository(conn)
	spaces := spacerepo.NewPostgresRepository(conn)
	memberships := membershiprepo.NewPostgresRepository(conn)
	tasks := taskrepo.NewPostgresRepository(conn)

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.AccessTTL())

	checker := &authz.SpaceAccessChecker{
		Memberships: memberships,
		Spaces:      spaces,
		ReadTimeout: cfg.StoreTimeout(),
	}
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		checker.Cache = cache.NewDecisionCache(client)
		checker.CacheTTL = cfg.CacheTTL()
	}

	authSvc := identityservice.NewAuthService(users, orgs, hasher, tokens)

	engine := server.NewRouter(cfg, server.Handlers{
		Auth:   identityhandler.NewHandler(authSvc),
		Users:  userhandler.NewHandler(users),
		Spaces: spacehandler.NewHandler(spaces, memberships),
		Tasks:  taskhandler.NewHandler(tasks),
	}, tokens, users, checker)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "http server listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.InfoContext(ctx, "shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "shutdown", slog.Any("error", err))
	}
	logger.InfoContext(ctx, "http server stopped")
}
