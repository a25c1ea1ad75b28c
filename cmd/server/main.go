package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/garyjia/gov-travel-expense/internal/config"
	"github.com/garyjia/gov-travel-expense/internal/container"
	"github.com/garyjia/gov-travel-expense/pkg/utils"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	envFile := flag.String("env", ".env", "optional dotenv file loaded before the configuration")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	path := *configPath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if path == "" {
		logger.Warn("Configuration file not found, using defaults", zap.String("path", *configPath))
	}

	logger.Info("Starting government travel expense service",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("routing_enabled", cfg.Routing.Enabled))

	if err := run(cfg, logger); err != nil {
		logger.Error("Service stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("Server exited successfully")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	containerCfg, err := cfg.ToContainerConfig()
	if err != nil {
		return err
	}

	c, err := container.NewContainer(containerCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	// Cancelled on SIGINT or SIGTERM to shut the server down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("Failed to close container", zap.Error(err))
		}
	}()

	return c.Server().Start(ctx)
}
