package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leogic/blog-backend/internal/api"
	"github.com/leogic/blog-backend/internal/auth"
	"github.com/leogic/blog-backend/internal/config"
	"github.com/leogic/blog-backend/internal/db"
	"github.com/leogic/blog-backend/internal/logger"
	"github.com/leogic/blog-backend/internal/metrics"
	"github.com/leogic/blog-backend/internal/repository/postgres"
	"github.com/leogic/blog-backend/internal/services"
	"github.com/leogic/blog-backend/internal/storage"
	"github.com/leogic/blog-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	images, err := storage.NewS3Store(ctx, cfg, log)
	if err != nil {
		log.Error("s3 init", "err", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	userSvc := services.NewUserService(repos.Users, tm, repos.AuditLogs, wp)
	postSvc := services.NewPostService(repos.Posts, repos.AuditLogs, wp)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:     cfg,
		Log:     log,
		TM:      tm,
		UserSvc: userSvc,
		PostSvc: postSvc,
		Images:  images,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
