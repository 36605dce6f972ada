package maintenance

import (
	"context"
	"log/slog"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/events"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/metrics"
)

// Reconciler runs a single reconciliation pass.
type Reconciler interface {
	Run(ctx context.Context, opts Options) (Stats, error)
}

// CleanupService runs the reconciler on behalf of an operator or a schedule
// and announces the outcome on the event bus.
type CleanupService struct {
	reconciler Reconciler
	bus        events.Bus
	log        *logger.Logger
}

func NewCleanupService(reconciler Reconciler, bus events.Bus, log *logger.Logger) *CleanupService {
	return &CleanupService{reconciler: reconciler, bus: bus, log: log}
}

// CleanDuplicates runs the reconciler and publishes LeadsDeduplicated.
// requestedBy is the operator email, or "scheduler" for cron runs.
func (s *CleanupService) CleanDuplicates(ctx context.Context, requestedBy string, dryRun bool) (Stats, error) {
	stats, err := s.reconciler.Run(ctx, Options{DryRun: dryRun})
	metrics.RecordDedupeRun(dryRun, err, stats.LeadsMerged, stats.MoveFailures, stats.DeleteFailures)
	if err != nil {
		return stats, err
	}

	s.log.WithContext(ctx).Info("duplicate cleanup finished",
		slog.String("requested_by", requestedBy),
		slog.Bool("dry_run", stats.DryRun),
		slog.Int("total_leads", stats.TotalLeads),
		slog.Int("duplicates_found", stats.DuplicatesFound),
		slog.Int("leads_merged", stats.LeadsMerged),
		slog.Int64("interactions_moved", stats.InteractionsMoved),
		slog.Int("move_failures", stats.MoveFailures),
		slog.Int("delete_failures", stats.DeleteFailures),
		slog.Duration("duration", stats.Duration),
	)

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadsDeduplicated{
			BaseEvent:         events.NewBaseEvent(),
			RequestedBy:       requestedBy,
			DryRun:            stats.DryRun,
			TotalLeads:        stats.TotalLeads,
			DuplicateGroups:   stats.DuplicateGroups,
			DuplicatesFound:   stats.DuplicatesFound,
			LeadsMerged:       stats.LeadsMerged,
			InteractionsMoved: stats.InteractionsMoved,
			MoveFailures:      stats.MoveFailures,
			DeleteFailures:    stats.DeleteFailures,
			Duration:          stats.Duration,
		})
	}
	return stats, nil
}
