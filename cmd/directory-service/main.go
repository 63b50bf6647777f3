package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/enrichx/directory-service/internal/config"
	httpHandler "github.com/enrichx/directory-service/internal/handler/http"
	"github.com/enrichx/directory-service/internal/handler/http/middleware"
	"github.com/enrichx/directory-service/internal/infrastructure/database"
	"github.com/enrichx/directory-service/internal/infrastructure/database/postgres"
	"github.com/enrichx/directory-service/internal/infrastructure/identity"
	"github.com/enrichx/directory-service/internal/service"
	"github.com/enrichx/directory-service/internal/utils/logger"
	"github.com/enrichx/directory-service/internal/utils/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if cfg.Database.AutoMigrate {
		log.Info("Running database migrations")
		migrationURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
		m, err := migrate.New("file://"+cfg.Database.MigrationsPath, migrationURL)
		if err != nil {
			log.Fatal("Failed to create migration instance", zap.Error(err))
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
		log.Info("Migrations applied successfully")
	}

	dbPool, err := postgres.NewDBPool(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize PostgreSQL connection pool", zap.Error(err))
	}
	defer dbPool.Close()

	profileRepo := database.NewPgxProfileRepository(dbPool)
	identityClient := identity.NewClient(cfg.Identity, log)

	var limiter middleware.RateLimiter
	if cfg.Security.RateLimiting.Enabled {
		redisClient, err := rate.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize Redis client", zap.Error(err))
		}
		defer redisClient.Close()
		limiter = rate.NewLimiter(redisClient, log)
	}

	resolver := service.NewResolver(cfg.Admin.Email, cfg.Admin.DisplayName)
	accessService := service.NewAccessService(identityClient, profileRepo, resolver, cfg.Identity.JWTSecret, log)
	directoryService := service.NewDirectoryService(identityClient, profileRepo, resolver, log)
	statsService := service.NewStatsService(identityClient, profileRepo, log)
	mutationService := service.NewMutationService(identityClient, profileRepo, log)

	router := httpHandler.SetupRouter(accessService, directoryService, statsService, mutationService, limiter, cfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
