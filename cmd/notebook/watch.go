package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/BooleanCube/notebook/internal/compiler"
	"github.com/BooleanCube/notebook/internal/config"
	"github.com/BooleanCube/notebook/internal/logfields"
	"github.com/BooleanCube/notebook/internal/metrics"
	"github.com/BooleanCube/notebook/internal/watch"
)

// runWatch compiles once, then keeps the index current until interrupted.
func runWatch(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recorder, cleanup := setupMetrics(cfg)
	defer cleanup()

	c := compiler.New(cfg, compiler.WithRecorder(recorder))
	builder := func(ctx context.Context) error {
		_, err := c.Run(ctx)
		return err
	}

	// Initial compile; watch mode starts even if it fails, so broken content
	// can be fixed under the watcher.
	if err := builder(ctx); err != nil {
		slog.Error("Initial compile failed", logfields.Error(err))
	}

	w, err := watch.NewWatcher(cfg.Content.Root, cfg.DebounceDuration(), builder)
	if err != nil {
		return err
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		return err
	}

	if interval := cfg.IntervalDuration(); interval > 0 {
		scheduler, err := watch.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := scheduler.SchedulePeriodicRebuild(ctx, interval, builder); err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Error("Error stopping scheduler", logfields.Error(err))
			}
		}()
	}

	<-ctx.Done()
	slog.Info("Shutting down")
	return nil
}

// setupMetrics wires the Prometheus recorder and endpoint when configured;
// otherwise the compiler keeps its no-op recorder.
func setupMetrics(cfg *config.Config) (metrics.Recorder, func()) {
	if cfg.Watch.MetricsAddr == "" {
		return metrics.NoopRecorder{}, func() {}
	}

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: cfg.Watch.MetricsAddr, Handler: mux}

	go func() {
		slog.Info("Serving metrics", slog.String("addr", cfg.Watch.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Metrics server shutdown failed", logfields.Error(err))
		}
	}
	return recorder, cleanup
}
