package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskmanagement/task-system/internal/api"
	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/infrastructure/config"
	mongorepo "github.com/taskmanagement/task-system/internal/infrastructure/db/mongo"
	redisconn "github.com/taskmanagement/task-system/internal/infrastructure/db/redis"
	"github.com/taskmanagement/task-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Task Management API
// @version 1.0
// @description Task tracking backend with password and federated authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// A missing JWT_SECRET lands here: refuse to start rather than issue
		// tokens nobody can verify.
		logger.Init(logger.Options{Service: "task-system"})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "task-system",
		Pretty:  cfg.Env == "development",
	})

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	// Seed the role catalogue. Idempotent, so every instance can run it.
	roleRepo := mongorepo.NewRoleRepository(db)
	for _, name := range []string{domain.RoleUser, domain.RoleAdmin} {
		if _, err := roleRepo.Ensure(ctx, name); err != nil {
			log.Fatal().Err(err).Str("role", name).Msg("seed role")
		}
	}

	rdb, err := redisconn.Connect(ctx, redisconn.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}()

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
}
