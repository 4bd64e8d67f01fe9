package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"indicatorcli/internal/config"
	"indicatorcli/internal/infrastructure"
	"indicatorcli/internal/operations"
)

// shutdownTimeout bounds flushing telemetry after the run
const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("Combine failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return operations.NewConfigError("failed to load config", err)
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return operations.NewConfigError("failed to resolve paths", err)
	}
	if paths.LogFile != "" {
		cfg.Logging.FilePath = paths.LogFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return operations.NewConfigError("failed to initialize logger", err)
	}
	defer infrastructure.CloseLogFile()
	paths.LogPathResolution(logger)

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.TraceExporter = cfg.Telemetry.TraceExporter
	otelCfg.MetricsFile = paths.MetricsFile
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return operations.NewConfigError("failed to initialize telemetry", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	tracer, err := operations.NewOperationTracer(providers)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	_, runErr := operations.NewManager(cfg, paths, tracer, logger).Run(ctx)

	if err := providers.WriteMetrics(); err != nil {
		logger.Warn("Failed to write metrics", slog.String("error", err.Error()))
	}
	return runErr
}
