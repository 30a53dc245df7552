package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vantage-console/vantage/internal/app"
	"github.com/vantage-console/vantage/internal/auth"
	"github.com/vantage-console/vantage/internal/bootstrap"
	"github.com/vantage-console/vantage/internal/groups"
	"github.com/vantage-console/vantage/internal/modules"
	"github.com/vantage-console/vantage/internal/permissions"
	"github.com/vantage-console/vantage/internal/platform/cache"
	"github.com/vantage-console/vantage/internal/platform/db"
	"github.com/vantage-console/vantage/internal/rbac"
	"github.com/vantage-console/vantage/internal/roles"
	"github.com/vantage-console/vantage/internal/users"
	"github.com/vantage-console/vantage/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if err := db.Migrate(ctx, dbpool, migrations.FS, logger); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	seeder := bootstrap.NewSeeder(bootstrap.NewRepository(dbpool), logger, bootstrap.Config{
		AdminUsername: cfg.AdminUsername,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err := seeder.Run(ctx); err != nil {
		logger.Error("bootstrap seed", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens := auth.NewTokenStore(redisClient, cfg.TokenTTL)
	authService := auth.NewService(auth.NewRepository(dbpool))
	authHandler := auth.NewHandler(logger, authService, tokens)
	authMiddleware := auth.Middleware{Tokens: tokens, Logger: logger}

	rbacService := rbac.NewService(rbac.NewRepository(dbpool))
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}
	rbacHandler := rbac.NewHandler(logger, rbacService)

	usersHandler := users.NewHandler(logger, users.NewService(users.NewRepository(dbpool)), rbacMiddleware)
	groupsHandler := groups.NewHandler(logger, groups.NewService(groups.NewRepository(dbpool)), rbacMiddleware)
	rolesHandler := roles.NewHandler(logger, roles.NewService(roles.NewRepository(dbpool)), rbacMiddleware)
	modulesHandler := modules.NewHandler(logger, modules.NewService(modules.NewRepository(dbpool)), rbacMiddleware)
	permissionsHandler := permissions.NewHandler(logger, permissions.NewService(permissions.NewRepository(dbpool)), rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		UsersHandler:       usersHandler,
		GroupsHandler:      groupsHandler,
		RolesHandler:       rolesHandler,
		ModulesHandler:     modulesHandler,
		PermissionsHandler: permissionsHandler,
		RBACHandler:        rbacHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
