package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vault-purge/internal/config"
	"vault-purge/internal/database"
	"vault-purge/internal/handler"
	"vault-purge/internal/metrics"
	"vault-purge/internal/middleware"
	"vault-purge/internal/repository"
	"vault-purge/internal/router"
	"vault-purge/internal/scheduler"
	"vault-purge/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	cipherRepo := repository.NewCipherRepository(db.Pool)
	slog.Info("database ready")

	purgeMetrics := metrics.New(nil)
	purgeService := service.NewPurgeService(cipherRepo, cfg.TrashAutoDelete, purgeMetrics)

	authService, err := service.NewAuthService(cfg.AdminJWTSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)

	purgeScheduler := scheduler.New(purgeService, cfg.PurgeSchedule)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := purgeScheduler.Start(schedulerCtx); err != nil {
		schedulerCancel()
		db.Close()
		return nil, fmt.Errorf("failed to start purge scheduler: %w", err)
	}

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Purge: handler.NewPurgeHandler(purgeService, purgeScheduler),
		Trash: handler.NewTrashHandler(cipherRepo),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				schedulerCancel()
				purgeScheduler.Stop()
			},
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
