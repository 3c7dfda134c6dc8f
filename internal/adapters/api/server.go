// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to facade calls
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"nosqlkit.app/internal/core/cache"
	"nosqlkit.app/internal/core/instrument"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// CacheService is the cache surface the HTTP adapter depends on
type CacheService interface {
	Store(ctx context.Context, data interface{}) (string, error)
	Get(ctx context.Context, key string, decode cache.Decoder) (interface{}, bool, error)
	GetStr(ctx context.Context, key string) (string, bool, error)
	GetInt(ctx context.Context, key string) (int64, bool, error)
	GetFloat(ctx context.Context, key string) (float64, bool, error)
	Replay(ctx context.Context, operation string, w io.Writer) error
	Record(ctx context.Context, operation string) (*instrument.Record, error)
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router     *gin.Engine
	server     *http.Server
	config     ServerConfig
	collection ports.DocumentCollection
	cache      CacheService
	health     ports.SystemHealthChecker
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config     ServerConfig
	Collection ports.DocumentCollection
	Cache      CacheService
	Health     ports.SystemHealthChecker
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &HTTPServerAdapter{
		router:     router,
		config:     opts.Config,
		collection: opts.Collection,
		cache:      opts.Cache,
		health:     opts.Health,
	}

	server.setupRoutes()
	server.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Collection == nil {
		return errors.NewValidationError("document collection is required")
	}
	if opts.Cache == nil {
		return errors.NewValidationError("cache is required")
	}
	if opts.Health == nil {
		return errors.NewValidationError("health checker is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/schools", s.listSchools)
		api.POST("/schools", s.insertSchool)
		api.POST("/cache", s.storeValue)
		api.GET("/cache/:key", s.getValue)
		api.GET("/replay/:operation", s.replay)
		api.GET("/health", s.getHealth)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start serves HTTP until Shutdown is called
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", s.config.Port)
	if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *HTTPServerAdapter) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
