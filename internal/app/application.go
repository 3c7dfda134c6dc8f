package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"nosqlkit.app/internal/adapters/api"
	"nosqlkit.app/internal/config"
	"nosqlkit.app/internal/core/cache"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/logger"
)

type Application struct {
	config *config.Config

	// Adapters
	httpAdapter *api.HTTPServerAdapter
	router      *gin.Engine

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger.NewWithLevel(logger.ParseLevel(cfg.Log.Level)).WithField("service", "nosqlkit").SetDefault()

	return NewApplicationWithConfig(ctx, cfg)
}

// NewApplicationWithConfig wires the application from an already loaded configuration
func NewApplicationWithConfig(ctx context.Context, cfg *config.Config) (*Application, error) {
	app := &Application{config: cfg}

	if err := app.initializePorts(ctx); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = app.deps.Cleanup(ctx)
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializePorts(ctx context.Context) error {
	slog.Info("Initializing application ports...")

	deps, err := NewDependencyContainer(ctx, a.config)
	if err != nil {
		return fmt.Errorf("create dependency container: %w", err)
	}

	a.deps = deps
	a.ports = deps.ApplicationPorts()
	slog.Info("Application ports initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	if err := api.RegisterValidators(); err != nil {
		slog.Warn("Failed to register decoder validator", "error", err)
	}

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		Collection: a.ports.Collection,
		Cache:      a.deps.Cache(),
		Health:     a.ports.Health,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.httpAdapter = httpAdapter
	a.router = httpAdapter.GetRouter()

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if err := a.httpAdapter.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpAdapter.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(ctx); err != nil {
		slog.Warn("Error releasing store connections", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Cache returns the instrumented cache
func (a *Application) Cache() *cache.InstrumentedCache {
	return a.deps.Cache()
}

// Ports returns the application ports
func (a *Application) Ports() *ports.ApplicationPorts {
	return a.ports
}
