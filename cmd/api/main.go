package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"followup_backend/internal/auth"
	"followup_backend/internal/events"
	"followup_backend/internal/exports"
	apphttp "followup_backend/internal/http"
	"followup_backend/internal/http/router"
	"followup_backend/internal/leads"
	"followup_backend/internal/leads/digest"
	"followup_backend/internal/search"
	"followup_backend/internal/webhook"
	"followup_backend/platform/config"
	"followup_backend/platform/db"
	"followup_backend/platform/errtrack"
	"followup_backend/platform/logger"
	"followup_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "timezone", cfg.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	reporter, err := errtrack.New(errtrack.Options{DSN: cfg.GetSentryDSN(), Environment: cfg.GetEnvironment()})
	if err != nil {
		log.Warn("error tracking disabled", "error", err)
	}
	defer reporter.Flush(2 * time.Second)

	eventBus := events.NewInMemoryBus(log)
	eventBus.SetReporter(reporter)

	val := validator.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	authModule, err := auth.NewModule(pool, cfg, eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize auth module", "error", err)
		panic("failed to initialize auth module: " + err.Error())
	}

	leadsModule := leads.NewModule(pool, eventBus, val, cfg, log)
	if closeDigests := initDigestCache(ctx, cfg, leadsModule, log); closeDigests != nil {
		defer closeDigests()
	}
	exportsModule := exports.NewModule(leadsModule.Service())
	searchModule := search.NewModule(pool, val)
	webhookModule := webhook.NewModule(leadsModule.Service(), val, cfg, log)

	// Drain async handlers before the redis client and pool close.
	defer eventBus.Wait()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Reporter: reporter,
		Health:   db.PoolChecker{Pool: pool},
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			leadsModule,
			exportsModule,
			searchModule,
			webhookModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initDigestCache attaches the redis digest store when REDIS_URL is set.
// Without it the digest endpoint computes on every request.
func initDigestCache(ctx context.Context, cfg config.RedisConfig, module *leads.Module, log *logger.Logger) func() {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; follow-up digest caching disabled")
		return nil
	}

	client, err := digest.NewClient(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		log.Error("failed to initialize digest cache", "error", err)
		return nil
	}
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("digest cache unreachable; continuing without it", "error", err)
		_ = client.Close()
		return nil
	}

	module.SetDigestCache(digest.NewStore(client, digest.DefaultTTL))
	return func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
