package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fieldcheck/internal/auth"
	"fieldcheck/internal/config"
	"fieldcheck/internal/handler"
	"fieldcheck/internal/logging"
	"fieldcheck/internal/middleware"
	"fieldcheck/internal/observability"
	"fieldcheck/internal/port"
	"fieldcheck/internal/ratelimit"
	"fieldcheck/internal/repository/memory"
	"fieldcheck/internal/repository/postgres"
	"fieldcheck/internal/router"
	"fieldcheck/internal/service"
	"fieldcheck/internal/storage"
	s3storage "fieldcheck/internal/storage/s3"
	"fieldcheck/internal/validator"
	"fieldcheck/internal/validator/checks"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sqlx.DB
	if cfg.UsesPostgres() {
		db, err = postgres.NewDB(ctx, &cfg.DB, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	// Job store
	var jobRepo port.ValidationJobRepository
	if cfg.Store.Backend == config.BackendPostgres {
		jobRepo = postgres.NewValidationJobRepo(db)
	} else {
		logger.Warn("using in-memory job store; validation history is lost on restart")
		jobRepo = memory.NewValidationJobRepo()
	}

	// Rate limiter
	var (
		counterStore port.RateCounterStore
		sweeper      ratelimit.Sweeper
	)
	if cfg.RateLimit.Backend == config.BackendPostgres {
		pgCounters := postgres.NewRateCounterRepo(db)
		counterStore, sweeper = pgCounters, pgCounters
	} else {
		memCounters := ratelimit.NewMemoryStore()
		counterStore, sweeper = memCounters, memCounters
	}
	limiter := ratelimit.NewLimiter(counterStore, cfg.RateLimit, logger, metrics)
	janitor := ratelimit.NewJanitor(sweeper, cfg.RateLimit.Window, cfg.RateLimit.SweepInterval, logger)
	go janitor.Start(ctx)

	// Validators
	registry := validator.NewRegistry()
	vendorHTTP := &http.Client{Timeout: cfg.Validators.Timeout}
	if err := checks.RegisterBuiltins(registry, cfg.Validators, vendorHTTP); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}
	if missing := registry.Missing(); len(missing) > 0 {
		return fmt.Errorf("validators without a check: %v", missing)
	}
	for _, id := range checks.Unconfigured(cfg.Validators) {
		logger.Warn("validator has no vendor endpoint; its runs will be recorded as errors",
			zap.String("validator_id", string(id)))
	}

	runnerOpts := []validator.RunnerOption{
		validator.WithTimeout(cfg.Validators.Timeout),
		validator.WithMetrics(metrics),
	}
	if cfg.Evidence.Bucket != "" {
		objectStore, err := s3storage.NewS3Client(ctx, &cfg.Evidence)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		archive := storage.NewEvidenceArchive(objectStore, cfg.Evidence.Bucket, cfg.Evidence.KeyPrefix)
		runnerOpts = append(runnerOpts, validator.WithEvidenceArchive(archive))
		logger.Info("evidence archive enabled", zap.String("bucket", cfg.Evidence.Bucket))
	}
	runner := validator.NewRunner(registry, jobRepo, logger, runnerOpts...)

	// Services and handlers
	validationSvc := service.NewValidationService(registry, runner, jobRepo, cfg.Validators, cfg.Jobs, logger)
	validationH := handler.NewValidationHandler(validationSvc, logger)

	var pinger handler.Pinger
	if db != nil {
		pinger = db
	}
	healthH := handler.NewHealthHandler(pinger)

	var verifier middleware.CallerVerifier
	if v := auth.NewTokenVerifier(cfg.JWT); v != nil {
		verifier = v
	} else {
		logger.Warn("no JWT secret configured; all callers are anonymous")
	}

	r := router.Setup(
		logger,
		cfg.CORS.AllowedOrigins,
		verifier,
		limiter,
		validationH,
		healthH,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("store", cfg.Store.Backend),
			zap.String("rate_limit_store", cfg.RateLimit.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
