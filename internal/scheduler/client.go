package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/apperr"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// cleanupUniqueTTL keeps a second request from queueing while one is pending.
const cleanupUniqueTTL = 15 * time.Minute

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueDuplicateCleanup queues a cleanup run and returns the task id.
// A cleanup that is already queued yields a conflict error.
func (c *Client) EnqueueDuplicateCleanup(ctx context.Context, req ports.CleanupRequest) (string, error) {
	if c == nil || c.client == nil {
		return "", apperr.Unavailable("background jobs are not configured")
	}

	task, err := NewDuplicateCleanupTask(DuplicateCleanupPayload{RequestedBy: req.RequestedBy, DryRun: req.DryRun})
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.Unique(cleanupUniqueTTL),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return "", apperr.Conflict("a duplicate cleanup is already queued")
	}
	if err != nil {
		return "", fmt.Errorf("enqueue duplicate cleanup: %w", err)
	}
	return info.ID, nil
}

var _ ports.CleanupScheduler = (*Client)(nil)

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueue(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
