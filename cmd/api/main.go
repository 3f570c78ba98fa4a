package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/asafarviv55/attendance-system-backend/internal/cache"
	"github.com/asafarviv55/attendance-system-backend/internal/config"
	"github.com/asafarviv55/attendance-system-backend/internal/database"
	"github.com/asafarviv55/attendance-system-backend/internal/handlers"
	"github.com/asafarviv55/attendance-system-backend/internal/jobs"
	"github.com/asafarviv55/attendance-system-backend/internal/log"
	"github.com/asafarviv55/attendance-system-backend/internal/notify"
	"github.com/asafarviv55/attendance-system-backend/internal/reports"
	"github.com/asafarviv55/attendance-system-backend/internal/server"
	"github.com/asafarviv55/attendance-system-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	tz, err := time.LoadLocation(cfg.Workday.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Workday.Timezone).Msg("invalid workday timezone")
	}

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	if err := database.EnsureSchema(ctx, dbPool); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	mailer := notify.NewSMTPMailer(cfg.Mail)

	handlerSet := handlers.NewHandlerSet(logger, dbPool, redisClient, mailer, tz, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	var exporter *reports.Exporter
	if cfg.Reports.Endpoint != "" {
		objectStore, err := storage.NewObjectStore(cfg.Reports)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init object store")
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure bucket failed")
		}
		exporter = reports.NewExporter(handlerSet.AttendanceRepository(), objectStore, logger)
	}

	scheduler := jobs.NewScheduler(handlerSet.AttendanceService(), exporter, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	scheduler.Stop()

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
