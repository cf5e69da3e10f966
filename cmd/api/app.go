package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/config"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/location"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/tools"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/weather"
)

// Version is reported to MCP clients and on /health.
var Version = "1.0.0"

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	client          *openweathermap.Client
	locationService location.Service
	weatherService  weather.Service
	mcpServer       *mcp.Server
	cfg             *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	client := openweathermap.NewClient(cfg.ClientConfig(), logger)

	// Initialize weather service
	weatherSvc := weather.NewWeatherService(client, logger)

	locationSvc := location.NewLocationService(client, logger)

	toolset := tools.NewToolset(client, locationSvc, weatherSvc, logger)

	app := &App{
		router:          router,
		logger:          logger,
		client:          client,
		locationService: locationSvc,
		weatherService:  weatherSvc,
		mcpServer:       tools.NewServer(toolset, Version),
		cfg:             cfg,
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		app.logger.Info("server stopped")
		return nil
	}
}

// RunStdio serves MCP over stdin/stdout until the client disconnects or ctx is cancelled
func (app *App) RunStdio(ctx context.Context) error {
	err := app.mcpServer.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases the upstream HTTP session
func (app *App) Close() {
	if err := app.client.Close(); err != nil {
		app.logger.Warn("failed to close OpenWeatherMap client", "error", err)
	}
}
