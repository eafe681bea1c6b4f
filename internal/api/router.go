// Package api wires the HTTP surface of the Linkstash backend.
package api

import (
	"log/slog"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/linkstash/linkstash-backend/internal/api/handlers"
	"github.com/linkstash/linkstash-backend/internal/api/middleware"
	"github.com/linkstash/linkstash-backend/internal/preview"
	"github.com/linkstash/linkstash-backend/internal/repository"
	"github.com/linkstash/linkstash-backend/internal/storage"
	"gorm.io/gorm"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB            *gorm.DB
	ObjectStorage storage.ObjectStorage
	Preview       *preview.Service
	Logger        *slog.Logger
	// ObjectsDir, when set, is served under /objects/ so locally stored
	// uploads are publicly reachable. Leave empty for remote backends.
	ObjectsDir string
	// Security configuration
	APIKey         string   // API key for authentication (empty = disabled)
	AllowedOrigins []string // Allowed CORS origins
	RateLimit      int      // Requests per second (0 = use env default)
	RateBurst      int      // Burst size for rate limiter
	EnableAuth     bool     // Enable API key authentication
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Security Middleware (applied in correct order)
	// 1. Recover from panics
	e.Use(middleware.Recover())

	// 2. Security headers (applied to all responses)
	e.Use(middleware.SecureHeaders())

	// 3. CORS - Set environment variable if origins provided in config
	if len(cfg.AllowedOrigins) > 0 {
		os.Setenv("ALLOWED_ORIGINS", strings.Join(cfg.AllowedOrigins, ","))
	}
	e.Use(middleware.SecureCORS())

	// 4. Rate limiting - use RateLimiterWithConfig if custom values provided
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(float64(cfg.RateLimit), cfg.RateBurst, cfg.Logger))
	} else {
		e.Use(middleware.RateLimiter(cfg.Logger))
	}

	// 5. Request logging
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	// Initialize repositories
	linkRepo := repository.NewLinkRepository(cfg.DB)
	fileRepo := repository.NewFileRepository(cfg.DB)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	linkHandler := handlers.NewLinkHandler(linkRepo, cfg.Preview)
	fileHandler := handlers.NewFileHandler(fileRepo, linkRepo, cfg.ObjectStorage)

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// Locally stored objects (no auth required)
	if cfg.ObjectsDir != "" {
		e.Static("/objects", cfg.ObjectsDir)
	}

	// API routes
	api := e.Group("/api")

	// Apply API key authentication if enabled
	// Set API_KEY env var if provided in config
	if cfg.EnableAuth && cfg.APIKey != "" {
		os.Setenv("API_KEY", cfg.APIKey)
	}
	api.Use(middleware.APIKeyAuth(cfg.Logger))

	// Link routes
	links := api.Group("/links")
	links.GET("", linkHandler.List)
	links.POST("", linkHandler.Create)
	links.PUT("/:id", linkHandler.Update)
	links.GET("/:id/preview", linkHandler.Preview)

	// File routes (nested under links)
	links.GET("/:id/files", fileHandler.List)
	links.GET("/:id/files/count", fileHandler.Count)
	links.POST("/:id/objects", fileHandler.UploadObject)

	// File routes (standalone)
	files := api.Group("/files")
	files.POST("", fileHandler.CreateRecord)
	files.DELETE("/:id", fileHandler.Delete)
	files.GET("/:id/download", fileHandler.Download)

	return e
}
