package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/phone"
)

// DuplicateReconciler restores the one-lead-per-phone invariant. For every
// phone shared by several leads the newest lead is kept as master, the
// interactions of the others are re-pointed to it and the others are deleted.
type DuplicateReconciler struct {
	leads repository.LeadCleanupStore
	mover ports.InteractionMover
	log   *logger.Logger
}

// Options tunes a single run.
type Options struct {
	// DryRun computes the groups and counters without moving or deleting anything.
	DryRun bool
}

// Stats summarises a run. DuplicatesFound counts redundant records
// (group size minus one), not groups.
type Stats struct {
	TotalLeads        int           `json:"total_leads"`
	DuplicateGroups   int           `json:"duplicate_groups"`
	DuplicatesFound   int           `json:"duplicates_found"`
	LeadsMerged       int           `json:"leads_merged"`
	InteractionsMoved int64         `json:"interactions_moved"`
	MoveFailures      int           `json:"move_failures"`
	DeleteFailures    int           `json:"delete_failures"`
	DryRun            bool          `json:"dry_run"`
	Duration          time.Duration `json:"duration_ns"`
}

func NewDuplicateReconciler(leads repository.LeadCleanupStore, mover ports.InteractionMover, log *logger.Logger) *DuplicateReconciler {
	return &DuplicateReconciler{leads: leads, mover: mover, log: log}
}

type duplicateGroup struct {
	master  domain.Lead
	members []domain.Lead
}

// Run performs one reconciliation pass. Only a failure to load the lead list
// (or a cancelled context) is returned as an error; per-lead failures are
// logged, counted and skipped so the remaining groups are still processed.
//
// Leads are grouped by normalised phone number, not the stored text, so
// "+91 98765 43210" and "9876543210" count as duplicates of each other.
func (r *DuplicateReconciler) Run(ctx context.Context, opts Options) (Stats, error) {
	started := time.Now()
	log := r.log.WithContext(ctx)

	leads, err := r.leads.ListAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load leads: %w", err)
	}

	stats := Stats{TotalLeads: len(leads), DryRun: opts.DryRun}
	groups := groupByPhone(leads)

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(started)
			return stats, err
		}

		stats.DuplicateGroups++
		stats.DuplicatesFound += len(group.members)

		if opts.DryRun {
			continue
		}

		for _, dup := range group.members {
			r.mergeInto(ctx, log, group.master, dup, &stats)
		}
	}

	stats.Duration = time.Since(started)
	log.Info("duplicate reconciliation finished",
		slog.Bool("dry_run", stats.DryRun),
		slog.Int("total_leads", stats.TotalLeads),
		slog.Int("duplicate_groups", stats.DuplicateGroups),
		slog.Int("duplicates_found", stats.DuplicatesFound),
		slog.Int("leads_merged", stats.LeadsMerged),
		slog.Int64("interactions_moved", stats.InteractionsMoved),
		slog.Int("move_failures", stats.MoveFailures),
		slog.Int("delete_failures", stats.DeleteFailures),
		slog.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// mergeInto moves dup's interactions to master and then deletes dup.
// A duplicate is never deleted while it may still own interactions.
func (r *DuplicateReconciler) mergeInto(ctx context.Context, log *logger.Logger, master, dup domain.Lead, stats *Stats) {
	moved, err := r.mover.MoveInteractions(ctx, dup.ID, master.ID)
	if err != nil {
		stats.MoveFailures++
		log.Error("failed to move interactions, keeping duplicate",
			slog.String("duplicate_id", dup.ID.String()),
			slog.String("master_id", master.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	stats.InteractionsMoved += moved

	if err := r.leads.Delete(ctx, dup.ID); err != nil {
		stats.DeleteFailures++
		log.Error("failed to delete duplicate lead",
			slog.String("duplicate_id", dup.ID.String()),
			slog.String("master_id", master.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	stats.LeadsMerged++

	log.Debug("merged duplicate lead",
		slog.String("duplicate_id", dup.ID.String()),
		slog.String("master_id", master.ID.String()),
		slog.Int64("interactions_moved", moved),
	)
}

// groupByPhone returns the groups with more than one member, in order of
// their newest lead. Leads without a phone are never grouped.
func groupByPhone(leads []domain.Lead) []duplicateGroup {
	ordered := make([]domain.Lead, len(leads))
	copy(ordered, leads)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	byPhone := make(map[string][]domain.Lead)
	keys := make([]string, 0)
	for _, lead := range ordered {
		key := phone.Normalize(lead.Phone)
		if key == "" {
			continue
		}
		if _, seen := byPhone[key]; !seen {
			keys = append(keys, key)
		}
		byPhone[key] = append(byPhone[key], lead)
	}

	groups := make([]duplicateGroup, 0)
	for _, key := range keys {
		members := byPhone[key]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, duplicateGroup{
			master:  members[0],
			members: members[1:],
		})
	}
	return groups
}
