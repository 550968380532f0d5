package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/SimpnicServerTeam/packages-auth/internal/config"
	"github.com/SimpnicServerTeam/packages-auth/internal/handlers"
	"github.com/SimpnicServerTeam/packages-auth/internal/logger"
	"github.com/SimpnicServerTeam/packages-auth/internal/middleware"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository/memory"
	redis_repo "github.com/SimpnicServerTeam/packages-auth/internal/repository/redis"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository/sqlite"
	"github.com/SimpnicServerTeam/packages-auth/internal/router"
	"github.com/SimpnicServerTeam/packages-auth/internal/server"
	"github.com/SimpnicServerTeam/packages-auth/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	ctx := context.Background()

	db, err := sqlite.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	var credentialStore repository.CredentialStore
	switch cfg.DatabaseDriver {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisSettings.Address,
			Password: cfg.RedisSettings.Password,
			DB:       cfg.RedisSettings.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("address", cfg.RedisSettings.Address).Msg("Failed to connect to redis")
		}
		credentialStore = redis_repo.NewRedisCredentialStore(redisClient)
	case "memory":
		log.Warn().Msg("Using in-memory credential store, accounts are lost on restart")
		credentialStore = memory.NewMemoryCredentialStore()
	default:
		credentialStore = sqlite.NewSQLiteCredentialStore(db)
	}
	log.Info().Str("driver", cfg.DatabaseDriver).Msg("Credential store ready")

	hasher := service.NewArgon2idHasher(service.Argon2Params{
		MemoryKiB:   cfg.Argon2.MemoryKiB,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}, cfg.Argon2.Workers)
	tokenService := service.NewTokenService(cfg.JWTSecret)
	authService := service.NewAuthService(credentialStore, hasher, tokenService, cfg.Token.TTL)
	packageService := service.NewPackageService(sqlite.NewSQLitePackageRepository(db))

	app := server.New()

	router.SetupAuthRoutes(app, handlers.NewAuthHandler(authService, cfg.Token.CookieName, cfg.Token.TTL))
	router.SetupPackageRoutes(app,
		handlers.NewPackageHandler(packageService),
		middleware.RequireToken(authService, cfg.Token.CookieName),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server stopped gracefully.")
}
