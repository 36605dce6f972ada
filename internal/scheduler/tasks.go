package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskDuplicateCleanup = "leads.duplicate_cleanup"

// RequestedByScheduler marks cleanups started by the cron entry.
const RequestedByScheduler = "scheduler"

type DuplicateCleanupPayload struct {
	RequestedBy string `json:"requested_by"`
	DryRun      bool   `json:"dry_run"`
}

func NewDuplicateCleanupTask(payload DuplicateCleanupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDuplicateCleanup, data), nil
}

func ParseDuplicateCleanupPayload(task *asynq.Task) (DuplicateCleanupPayload, error) {
	var payload DuplicateCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DuplicateCleanupPayload{}, err
	}
	return payload, nil
}
