package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldops/dispatch-system/internal/api"
	"github.com/fieldops/dispatch-system/internal/infrastructure/config"
	mongodb "github.com/fieldops/dispatch-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fieldops/dispatch-system/internal/infrastructure/db/redis"
	"github.com/fieldops/dispatch-system/internal/infrastructure/notify"
	"github.com/fieldops/dispatch-system/pkg/logger"
)

// main wires configuration, storage, the notification dispatcher and the
// HTTP router, then runs until SIGINT/SIGTERM. Business logic lives in the
// internal/core packages.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Notification dispatcher ---
	dispatcher := notify.NewDispatcher(
		cfg.Notify.Workers,
		notify.NewLogSender(log),
		mongodb.NewNotificationRepository(db),
		log,
	)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, dispatcher, cfg)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting dispatch server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewTechnicianRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewWorkOrderRepository(db).EnsureIndexes(ctx)
}
