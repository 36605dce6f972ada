package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/maintenance"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"

	"github.com/hibiken/asynq"
)

// DuplicateCleaner runs the lead reconciler and reports its outcome.
type DuplicateCleaner interface {
	CleanDuplicates(ctx context.Context, requestedBy string, dryRun bool) (maintenance.Stats, error)
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	cleaner DuplicateCleaner
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, cleaner DuplicateCleaner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 1
	}

	w := &Worker{
		mux:     asynq.NewServeMux(),
		cleaner: cleaner,
		log:     log,
	}
	w.server = asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		Logger:       newAsynqLogger(log),
		ErrorHandler: asynq.ErrorHandlerFunc(w.reportError),
	})
	w.mux.HandleFunc(TaskDuplicateCleanup, w.handleDuplicateCleanup)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleDuplicateCleanup(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDuplicateCleanupPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	requestedBy := payload.RequestedBy
	if requestedBy == "" {
		requestedBy = RequestedByScheduler
	}

	_, err = w.cleaner.CleanDuplicates(ctx, requestedBy, payload.DryRun)
	return err
}

func (w *Worker) reportError(_ context.Context, task *asynq.Task, err error) {
	w.log.Error("background task failed",
		slog.String("task", task.Type()),
		slog.String("error", err.Error()),
	)
}
