package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platefull/recipe-catalog/internal/api"
	"github.com/platefull/recipe-catalog/internal/core/domain"
	"github.com/platefull/recipe-catalog/internal/infrastructure/config"
	mongodb "github.com/platefull/recipe-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/platefull/recipe-catalog/internal/infrastructure/db/redis"
	"github.com/platefull/recipe-catalog/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env != string(domain.EnvProduction),
	})

	env, err := domain.ParseEnvironment(cfg.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid APP_ENV")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	if err := mongodb.NewUserRepository(db, env).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := mongodb.NewRecipeRepository(db, env).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure recipe indexes")
	}

	e := api.NewRouter(db, rdb, env, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", string(env)).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
