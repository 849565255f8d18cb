package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forohub/forum-api/internal/api"
	"github.com/forohub/forum-api/internal/core/service"
	mongodb "github.com/forohub/forum-api/internal/infrastructure/db/mongo"
	redisdb "github.com/forohub/forum-api/internal/infrastructure/db/redis"
	"github.com/forohub/forum-api/internal/pkg/config"
	"github.com/forohub/forum-api/pkg/logger"
)

// @title           ForoHub API
// @version         1.0
// @description     Forum backend: JWT login and CRUD over discussion topics.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Token service construction validates the key material; a short or
	// missing secret is fatal here, before anything listens.
	tokens, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Alg, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid jwt configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	userRepo := mongodb.NewUserRepository(db)
	topicoRepo := mongodb.NewTopicoRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := topicoRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create topico indexes")
	}

	if err := mongodb.BootstrapUsers(ctx, userRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default users")
	}

	e := api.NewRouter(db, rdb, tokens, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
