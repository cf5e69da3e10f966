package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g docs.go -o ../../docs --parseDependency

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/config"

	_ "github.com/NimbleBrainInc/mcp-openweathermap/docs" // Import generated docs
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	if cfg.OpenWeatherMap.APIKey == "" {
		logger.Warn("OPENWEATHERMAP_API_KEY is not set, upstream calls will fail with 401")
	}

	// Create app
	app, err := NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Server.Transport {
	case config.TransportStdio:
		logger.Info("starting MCP server on stdio")
		err = app.RunStdio(ctx)
	default:
		logger.Info("starting server", "addr", cfg.GetServerAddr())
		err = app.Run(ctx, cfg.GetServerAddr())
	}
	if err != nil {
		logger.Error("server failed", "error", err)
		app.Close()
		log.Fatal(err)
	}
}
