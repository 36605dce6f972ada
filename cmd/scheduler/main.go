package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/adapters"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/email"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/events"
	interactionsrepo "github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/maintenance"
	leadrepo "github.com/ReachRyt-Services/collegeSeraBot/internal/leads/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/notification"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/scheduler"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/db"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if !cfg.IsSchedulerEnabled() {
		panic("REDIS_URL is required for the scheduler")
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "queue", cfg.GetAsynqQueue())

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

	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	notification.New(sender, cfg, log).RegisterHandlers(eventBus)

	mover := adapters.NewInteractionMover(interactionsrepo.New(pool))
	reconciler := maintenance.NewDuplicateReconciler(leadrepo.New(pool), mover, log)
	cleanup := maintenance.NewCleanupService(reconciler, eventBus, log)

	worker, err := scheduler.NewWorker(cfg, cleanup, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	periodic, err := scheduler.NewPeriodic(cfg, log)
	if err != nil {
		log.Error("failed to initialize periodic scheduler", "error", err)
		panic("failed to initialize periodic scheduler: " + err.Error())
	}
	if periodic == nil {
		log.Info("DEDUPE_CRON not configured; only on-demand cleanups will run")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return periodic.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		log.Error("scheduler stopped with error", "error", err)
	}

	// Let the report email for a run that finished during shutdown go out.
	eventBus.Wait()
	log.Info("scheduler stopped")
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
