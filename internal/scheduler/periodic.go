package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"

	"github.com/hibiken/asynq"
)

// Periodic enqueues the duplicate cleanup on DEDUPE_CRON.
type Periodic struct {
	scheduler *asynq.Scheduler
	entryID   string
	log       *logger.Logger
}

// NewPeriodic returns nil when no cron spec is configured.
func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	spec := strings.TrimSpace(cfg.GetDedupeCron())
	if spec == "" {
		return nil, nil
	}

	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	task, err := NewDuplicateCleanupTask(DuplicateCleanupPayload{RequestedBy: RequestedByScheduler})
	if err != nil {
		return nil, err
	}

	p := &Periodic{log: log}
	p.scheduler = asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Logger:          newAsynqLogger(log),
		PostEnqueueFunc: p.afterEnqueue,
	})

	entryID, err := p.scheduler.Register(spec, task,
		asynq.Queue(queueName(cfg)),
		asynq.Unique(cleanupUniqueTTL),
		asynq.MaxRetry(1),
	)
	if err != nil {
		return nil, fmt.Errorf("register dedupe cron %q: %w", spec, err)
	}
	p.entryID = entryID
	return p, nil
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (p *Periodic) Run(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.scheduler.Start(); err != nil {
		return err
	}
	p.log.Info("dedupe cron registered", slog.String("entry_id", p.entryID))

	<-ctx.Done()
	p.scheduler.Shutdown()
	return nil
}

func (p *Periodic) afterEnqueue(info *asynq.TaskInfo, err error) {
	if err == nil {
		p.log.Info("scheduled duplicate cleanup enqueued", slog.String("task_id", info.ID))
		return
	}
	// a previous cleanup is still queued
	if errors.Is(err, asynq.ErrDuplicateTask) {
		p.log.Debug("scheduled duplicate cleanup skipped", slog.String("reason", err.Error()))
		return
	}
	p.log.Error("scheduled duplicate cleanup not enqueued", slog.String("error", err.Error()))
}
