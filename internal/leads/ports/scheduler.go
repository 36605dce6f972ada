package ports

import "context"

// CleanupRequest describes an on-demand duplicate cleanup.
type CleanupRequest struct {
	RequestedBy string
	DryRun      bool
}

// CleanupScheduler queues duplicate cleanup for a background worker.
type CleanupScheduler interface {
	EnqueueDuplicateCleanup(ctx context.Context, req CleanupRequest) (taskID string, err error)
}
