package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pet-catalog-api/internal/api"
	"github.com/pet-catalog-api/internal/cache"
	"github.com/pet-catalog-api/internal/config"
	"github.com/pet-catalog-api/internal/database"
	"github.com/pet-catalog-api/internal/metrics"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/pet-catalog-api/internal/service"
	"github.com/pet-catalog-api/internal/storage"
	"github.com/pet-catalog-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Pet Catalog API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Media storage
	store, err := storage.New(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media storage")
	}
	var uploadDir string
	if local, ok := store.(*storage.LocalStore); ok {
		uploadDir = local.Dir()
	}

	// Tag directory cache
	var tagCache service.TagCache = cache.Noop{}
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisTagCache(cache.NewRedisClient(cfg.Redis), cfg.Redis.TagTTL, log)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			// reads fall through to postgres until redis comes back
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable at startup")
		}
		cancel()
		tagCache = redisCache
	}

	// Initialize services
	services := service.NewServices(repos, cfg, store, tagCache, log)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "pet_catalog"),
	)

	// Initialize router
	router := api.NewRouter(services, cfg, api.Options{
		Metrics:   metrics.NewHTTPMetrics(registry),
		Gatherer:  registry,
		UploadDir: uploadDir,
		Ready:     db.HealthCheck,
	}, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
