// Package app wires the dispatch engine: config, procedure table,
// dispatcher, envelope processor, HTTP gateway, and telemetry.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"jrpcd/internal/infra/config"
	"jrpcd/internal/infra/dispatch"
	"jrpcd/internal/infra/envelope"
	"jrpcd/internal/infra/gateway"
	"jrpcd/internal/infra/telemetry"
)

// RegisterFunc populates the procedure table at startup. The table is
// immutable once Serve is past construction.
type RegisterFunc func(*dispatch.Table) error

type App struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{logger: logger}
}

type ServeConfig struct {
	ConfigPath string
	Register   RegisterFunc
}

// Serve runs the dispatcher until ctx is canceled.
func (a *App) Serve(ctx context.Context, cfg ServeConfig) error {
	runtimeCfg, err := config.NewLoader(a.logger).Load(cfg.ConfigPath)
	if err != nil {
		return err
	}
	if cfg.Register == nil {
		return errors.New("app: no procedure registration supplied")
	}

	table := dispatch.NewTable()
	if err := cfg.Register(table); err != nil {
		return fmt.Errorf("register procedures: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewPrometheusMetrics(registry)

	dispatcher, err := dispatch.New(table, dispatch.Options{
		Debug:   runtimeCfg.Debug,
		Logger:  a.logger,
		Metrics: metrics,
	})
	if err != nil {
		return err
	}

	processor := envelope.NewProcessor(dispatcher, runtimeCfg.Debug, envelope.Options{
		Logger:  a.logger,
		Metrics: metrics,
	})
	handler := gateway.NewHandler(processor, gateway.Options{
		Debug:        runtimeCfg.Debug,
		MaxBodyBytes: runtimeCfg.MaxBodyBytes,
		Logger:       a.logger,
	})

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	obsErr := make(chan error, 1)
	go func() {
		obsErr <- telemetry.StartObservabilityServer(serveCtx, runtimeCfg.Observability, registry, a.logger)
	}()

	a.logger.Info("dispatcher listening",
		zap.String("addr", runtimeCfg.ListenAddress),
		zap.Bool("debug", runtimeCfg.Debug),
		zap.Strings("methods", table.Names()),
	)

	server := &http.Server{
		Addr:    runtimeCfg.ListenAddress,
		Handler: handler,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("dispatcher server failed: %w", err)
	case err := <-obsErr:
		if err != nil {
			return err
		}
		// Observability exited cleanly; keep watching the dispatcher.
		select {
		case err := <-serveErr:
			return fmt.Errorf("dispatcher server failed: %w", err)
		case <-serveCtx.Done():
		}
	case <-serveCtx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("dispatcher shutdown error", zap.Error(err))
		return err
	}
	a.logger.Info("dispatcher stopped")
	return nil
}

// ValidateServe checks the configuration and procedure registration without
// serving.
func (a *App) ValidateServe(cfg ServeConfig) error {
	runtimeCfg, err := config.NewLoader(a.logger).Load(cfg.ConfigPath)
	if err != nil {
		return err
	}

	table := dispatch.NewTable()
	if cfg.Register != nil {
		if err := cfg.Register(table); err != nil {
			return fmt.Errorf("register procedures: %w", err)
		}
	}
	if _, err := dispatch.New(table, dispatch.Options{Debug: runtimeCfg.Debug, Logger: a.logger}); err != nil {
		return err
	}

	a.logger.Info("configuration validated",
		zap.String("config", cfg.ConfigPath),
		zap.Int("procedures", table.Len()),
		zap.Bool("debug", runtimeCfg.Debug),
	)
	return nil
}
