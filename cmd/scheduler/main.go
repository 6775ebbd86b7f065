package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"followup_backend/internal/events"
	"followup_backend/internal/leads"
	"followup_backend/internal/leads/digest"
	"followup_backend/internal/scheduler"
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
	log.Info("starting scheduler", "env", cfg.Env, "timezone", cfg.Timezone)

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the scheduler")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	reporter, err := errtrack.New(errtrack.Options{DSN: cfg.GetSentryDSN(), Environment: cfg.GetEnvironment()})
	if err != nil {
		log.Warn("error tracking disabled", "error", err)
	}
	defer reporter.Flush(2 * time.Second)

	eventBus := events.NewInMemoryBus(log)
	eventBus.SetReporter(reporter)

	redisClient, err := digest.NewClient(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		log.Error("failed to initialize redis client", "error", err)
		panic("failed to initialize redis client: " + err.Error())
	}
	defer func() { _ = redisClient.Close() }()
	defer eventBus.Wait()

	// Worker-side wiring only; no HTTP routes are mounted here.
	leadsModule := leads.NewModule(pool, eventBus, validator.New(), cfg, log)
	leadsModule.SetDigestCache(digest.NewStore(redisClient, digest.DefaultTTL))

	cron, err := scheduler.NewCron(cfg, log)
	if err != nil {
		log.Error("failed to initialize digest cron", "error", err)
		panic("failed to initialize digest cron: " + err.Error())
	}
	if err := cron.Start(); err != nil {
		log.Error("failed to start digest cron", "error", err)
		panic("failed to start digest cron: " + err.Error())
	}
	defer cron.Shutdown()

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()
	if err := client.EnqueueDigestRefresh(ctx, scheduler.TriggerStartup); err != nil {
		log.Warn("failed to enqueue startup digest refresh", "error", err)
	}

	worker, err := scheduler.NewWorker(cfg, leadsModule.DigestRefresher(), reporter, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
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
