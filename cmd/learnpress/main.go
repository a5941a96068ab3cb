// Package main is the entry point for the LearnPress course API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"learnpress/internal/cache"
	"learnpress/internal/config"
	"learnpress/internal/database"
	"learnpress/internal/handlers"
	"learnpress/internal/logger"
	"learnpress/internal/middleware"
	"learnpress/internal/router"
	"learnpress/internal/storage"
	"learnpress/internal/store"
	"learnpress/internal/tree"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, console in development.
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.Store,
	)

	// Pick the content store backend.
	repos, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("failed to open store", "error", err)
	}
	defer closeStore()

	svc := tree.NewService(repos, log)

	// Load the sample course (no-op if any course already exists).
	if cfg.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Seed(ctx, svc, log)
		cancel()
		if err != nil {
			log.Fatal("failed to seed store", "error", err)
		}
	}

	// Write rate limiting: shared counters in Valkey when configured,
	// otherwise per-process.
	limiter, closeLimiter, err := openLimiter(cfg, log)
	if err != nil {
		log.Fatal("failed to set up rate limiter", "error", err)
	}
	defer closeLimiter()

	// Connect to S3-compatible object storage (optional, the API works without it).
	opts := handlers.Options{MaxUploadBytes: cfg.MaxUploadBytes}
	storageClient, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal("failed to initialize S3 storage", "error", err)
	}
	if storageClient != nil {
		opts.Assets = storageClient
		log.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		log.Warn("s3 storage not configured, asset uploads disabled")
	}

	// Set up the Chi router with all middleware and routes.
	api := handlers.New(svc, log, opts)
	r := router.New(api, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
		RetryAfter:  cfg.RateLimitWindow,
		Log:         log,
	})

	// Create the HTTP server with sensible timeouts. ReadTimeout leaves room
	// for asset uploads.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		log.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", "error", err)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutdown signal received", "signal", sig.String())

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}
	log.Info("server stopped gracefully")
}

// openStore returns the repositories for cfg.Store and a func releasing
// whatever they hold.
func openStore(cfg *config.Config, log *logger.Logger) (tree.Repositories, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store, data is lost on restart")
		m := store.NewMemory()
		return tree.Repositories{
			Courses:  m.Courses(),
			Sections: m.Sections(),
			Lessons:  m.Lessons(),
			Blocks:   m.Blocks(),
		}, func() {}, nil
	}

	db, err := database.Connect(cfg.DSN(), log)
	if err != nil {
		return tree.Repositories{}, nil, err
	}
	// Run pending migrations.
	if err := database.Migrate(db.DB); err != nil {
		db.Close()
		return tree.Repositories{}, nil, fmt.Errorf("migrate: %w", err)
	}
	return tree.Repositories{
		Courses:  store.NewCourseStore(db),
		Sections: store.NewSectionStore(db),
		Lessons:  store.NewLessonStore(db),
		Blocks:   store.NewBlockStore(db),
	}, func() { db.Close() }, nil
}

func openLimiter(cfg *config.Config, log *logger.Logger) (middleware.Limiter, func(), error) {
	if cfg.ValkeyHost == "" {
		rl := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
		return rl, rl.Stop, nil
	}
	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, log)
	if err != nil {
		return nil, nil, err
	}
	counter := cache.NewWindowCounter(client, cfg.RateLimitWindow)
	return middleware.NewValkeyLimiter(counter, cfg.RateLimitRequests), func() { client.Close() }, nil
}
