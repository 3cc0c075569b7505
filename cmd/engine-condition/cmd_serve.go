package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/miradorstack/engine-condition/internal/api"
	"github.com/miradorstack/engine-condition/internal/classifier"
	"github.com/miradorstack/engine-condition/internal/httpapi"
	"github.com/miradorstack/engine-condition/internal/metrics"
	"github.com/miradorstack/engine-condition/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gRPC, HTTP and metrics listeners",
	Long: `Serve loads the classifier artifact once, then exposes advisories and
predictions over gRPC and JSON/HTTP until SIGINT or SIGTERM. A missing or
invalid artifact aborts startup.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(os.Stdout)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		return err
	}
	cfg, logger := rt.cfg, rt.logger
	logger.Info("starting engine-condition",
		slog.String("version", version),
		slog.String("grpc_address", cfg.Server.GRPCAddress),
		slog.String("http_address", cfg.Server.HTTPAddress),
	)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		return err
	}

	model, err := classifier.Load(cfg.Model.Path)
	if err != nil {
		logger.Error("failed to load classifier", slog.String("path", cfg.Model.Path), slog.Any("error", err))
		return err
	}
	logger.Info("classifier loaded",
		slog.String("name", model.Name()),
		slog.String("kind", string(model.Kind())),
		slog.Int("rules", len(rt.advisor.Rules())),
	)

	svc := services.NewConditionService(logger, rt.catalog, rt.advisor, model)

	grpcServer, err := api.NewServer(cfg.Server, svc, logger)
	if err != nil {
		logger.Error("failed to create gRPC server", slog.Any("error", err))
		return err
	}
	httpServer := httpapi.NewServer(cfg.Server, svc, logger)

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.Server.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       5 * time.Second,
			WriteTimeout:      15 * time.Second,
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("gRPC server listening", slog.String("address", grpcServer.Address()))
		if err := grpcServer.Start(); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("address", cfg.Server.HTTPAddress))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	if metricsServer != nil {
		g.Go(func() error {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	// Any listener failure cancels gctx and takes the others down with it.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer cancel()

		grpcServer.Shutdown(shutdownCtx)
		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("HTTP server shutdown", slog.Any("error", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("metrics server shutdown", slog.Any("error", err))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("engine-condition exited", slog.Any("error", err))
		return err
	}
	logger.Info("engine-condition stopped")
	return nil
}
