package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/angeloszaimis/booking-client/config"
	"github.com/angeloszaimis/booking-client/internal/client"
	"github.com/angeloszaimis/booking-client/internal/health"
	"github.com/angeloszaimis/booking-client/internal/httpserver"
	"github.com/angeloszaimis/booking-client/internal/metrics"
	"github.com/angeloszaimis/booking-client/pkg/logger"
)

const collectorBufferSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector(collectorBufferSize, log)
	collector.Start(ctx)

	apiClient, err := buildClient(cfg, log, collector)
	if err != nil {
		log.Error("Failed to create API client", slog.Any("err", err))
		os.Exit(1)
	}

	monitor, err := buildMonitor(cfg, log, collector)
	if err != nil {
		log.Error("Failed to create health monitor", slog.Any("err", err))
		os.Exit(1)
	}
	go monitor.Run(ctx)

	srv, err := httpserver.New(cfg.Monitor.Address, setupRouter(apiClient, monitor, collector))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Monitor listening",
		slog.String("address", cfg.Monitor.Address),
		slog.String("backend", apiClient.BaseURL()))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting monitor server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func buildClient(cfg *config.Config, log *slog.Logger, collector *metrics.Collector) (*client.Client, error) {
	timeout, err := time.ParseDuration(cfg.API.Timeout)
	if err != nil {
		return nil, err
	}
	recoveryTimeout, err := time.ParseDuration(cfg.Breaker.RecoveryTimeout)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := time.ParseDuration(cfg.Cache.TTL)
	if err != nil {
		return nil, err
	}
	baseDelay, err := time.ParseDuration(cfg.Retry.BaseDelay)
	if err != nil {
		return nil, err
	}
	maxDelay, err := time.ParseDuration(cfg.Retry.MaxDelay)
	if err != nil {
		return nil, err
	}

	return client.New(client.Options{
		BaseURL:          cfg.API.BaseURL,
		Timeout:          timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		RecoveryTimeout:  recoveryTimeout,
		CacheTTL:         cacheTTL,
		CacheSize:        cfg.Cache.Size,
		MaxRetries:       cfg.Retry.MaxRetries,
		BaseDelay:        baseDelay,
		MaxDelay:         maxDelay,
		Logger:           log,
		Collector:        collector,
	})
}

func buildMonitor(cfg *config.Config, log *slog.Logger, collector *metrics.Collector) (*health.Monitor, error) {
	healthTimeout, err := time.ParseDuration(cfg.API.HealthTimeout)
	if err != nil {
		return nil, err
	}
	probeInterval, err := time.ParseDuration(cfg.Monitor.ProbeInterval)
	if err != nil {
		return nil, err
	}

	probe, err := health.NewProbe(cfg.API.BaseURL, healthTimeout, log)
	if err != nil {
		return nil, err
	}

	return health.NewMonitor(probe, probeInterval, collector, log), nil
}
