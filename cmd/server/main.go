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

	"appr/internal/airport"
	"appr/internal/appr"
	"appr/internal/appr/handler"
	apprmetrics "appr/internal/appr/metrics"
	"appr/internal/appr/service"
	"appr/internal/audit"
	auditstore "appr/internal/audit/store"
	"appr/internal/platform/config"
	"appr/internal/platform/httpserver"
	"appr/internal/platform/logger"
	"appr/internal/platform/metrics"
	"appr/internal/platform/postgres"
	"appr/internal/platform/redis"
	httptransport "appr/internal/transport/http"
	"appr/pkg/platform/circuit"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	carrierSize, err := appr.ParseCarrierSize(cfg.Validation.CarrierSize)
	if err != nil {
		return err
	}

	store, closeStore, err := buildAuditStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher := audit.NewPublisher(store,
		audit.WithAsyncBuffer(cfg.Audit.Buffer),
		audit.WithLogger(log),
	)
	defer publisher.Close()

	airports := airport.Default()
	validator := appr.NewValidator(airports, appr.WithCarrierSize(carrierSize))
	svc := service.New(validator,
		service.WithAuditLog(publisher),
		service.WithMetrics(apprmetrics.New()),
		service.WithLogger(log),
		service.WithMaxBatchSize(cfg.Validation.MaxBatchSize),
		service.WithBatchConcurrency(cfg.Validation.BatchConcurrency),
	)
	h := handler.New(svc, airports, log, carrierSize)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        metrics.New(),
		Gatherer:       prometheus.DefaultGatherer,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, h)

	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.RequestTimeout+5*time.Second)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting appr validation service",
			"addr", cfg.Server.Addr,
			"carrier_size", carrierSize,
			"airports", airports.Len(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildAuditStore prefers Postgres, then Redis, then memory.
func buildAuditStore(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Store, func(), error) {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if db != nil {
		pg := auditstore.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure audit schema: %w", err)
		}
		log.Info("audit store selected", "backend", "postgres")
		return withFallback(pg, "postgres", log), closer(log, "postgres", db.Close), nil
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if rc != nil {
		log.Info("audit store selected", "backend", "redis")
		rs := auditstore.NewRedisStore(rc.Client, auditstore.WithRecordTTL(cfg.Audit.RecordTTL))
		return withFallback(rs, "redis", log), closer(log, "redis", rc.Close), nil
	}

	log.Info("audit store selected", "backend", "memory")
	return auditstore.NewInMemoryStore(), func() {}, nil
}

// withFallback keeps records in memory while the durable backend is failing.
func withFallback(primary audit.Store, name string, log *slog.Logger) audit.Store {
	breaker := circuit.New("audit-" + name)
	return auditstore.NewFallbackStore(primary, auditstore.NewInMemoryStore(), breaker, log)
}

func closer(log *slog.Logger, name string, fn func() error) func() {
	return func() {
		if err := fn(); err != nil {
			log.Error("failed to close audit backend", "backend", name, "error", err)
		}
	}
}
