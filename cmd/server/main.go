package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/linkstash/linkstash-backend/internal/api"
	"github.com/linkstash/linkstash-backend/internal/config"
	"github.com/linkstash/linkstash-backend/internal/database"
	"github.com/linkstash/linkstash-backend/internal/preview"
	"github.com/linkstash/linkstash-backend/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadWithValidation()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("starting linkstash backend")
	cfg.LogConfig(logger)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	objectStorage, objectsDir, err := buildObjectStorage(cfg)
	if err != nil {
		logger.Error("failed to initialize object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	previewSvc := preview.NewService(cfg.ScreenshotEndpoint, cfg.ScreenshotAPIKey)

	router := api.NewRouter(&api.RouterConfig{
		DB:             db,
		ObjectStorage:  objectStorage,
		Preview:        previewSvc,
		Logger:         logger,
		ObjectsDir:     objectsDir,
		APIKey:         cfg.APIKey,
		AllowedOrigins: splitOrigins(cfg.AllowedOrigins),
		RateLimit:      int(cfg.RateLimitRequests),
		RateBurst:      cfg.RateLimitBurst,
		EnableAuth:     cfg.APIKey != "",
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.APIPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", slog.Int("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

// buildObjectStorage selects the storage backend. The second return value
// is the local objects directory to serve over HTTP, empty for s3.
func buildObjectStorage(cfg *config.Config) (storage.ObjectStorage, string, error) {
	switch cfg.StorageBackend {
	case "s3":
		store, err := storage.NewS3Storage(storage.S3Config{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		return store, "", err
	default:
		store, err := storage.NewLocalStorage(cfg.ObjectStoragePath, cfg.PublicBaseURL)
		return store, cfg.ObjectStoragePath, err
	}
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
