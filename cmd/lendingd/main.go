// Command lendingd serves the lending HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-lending-go/httpapi"
	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/oteladapters"
	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine"
	"github.com/AntonStoeckl/library-lending-go/shell/config"
)

const (
	version                 = "0.1.0"
	instrumentationName     = "github.com/AntonStoeckl/library-lending-go"
	gracefulShutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("lendingd stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg.Env, cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storeOptions := []postgresengine.Option{postgresengine.WithLogger(logger)}

	var metrics lending.MetricsCollector
	if cfg.OTel.Enabled {
		providers, err := config.NewObservabilityProviders(ctx, cfg.OTel, version)
		if err != nil {
			return err
		}
		defer func() {
			if err := providers.Shutdown(); err != nil {
				logger.Warn("observability shutdown", "err", err)
			}
		}()

		metrics = oteladapters.NewMetricsCollector(otel.Meter(instrumentationName))
		storeOptions = append(storeOptions,
			postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger(instrumentationName)),
			postgresengine.WithMetrics(metrics),
			postgresengine.WithTracing(oteladapters.NewTracingCollector(otel.Tracer(instrumentationName))),
		)

		logger.Info("observability enabled", "traces", cfg.OTel.TracesEndpoint, "metrics", cfg.OTel.MetricsEndpoint)
	}

	opened, err := config.OpenStore(ctx, cfg.Database, cfg.AdapterType, storeOptions...)
	if err != nil {
		return err
	}
	defer opened.Close()

	service := lending.NewService(opened.Store, opened.Store)

	handler := &httpapi.Handler{
		Svc:              service,
		Health:           opened.Store,
		Log:              logger,
		Clock:            time.Now,
		RetryMaxAttempts: cfg.RetryMaxAttempts,
		Metrics:          metrics,
	}

	e := httpapi.New(handler, httpapi.Options{Logger: logger, RateLimitRPS: cfg.RateLimitRPS})

	errChan := make(chan error, 1)
	go func() {
		logger.Info("lendingd listening", "addr", cfg.HTTPAddr, "adapter", cfg.AdapterType, "replica", cfg.Database.HasReplica())
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
