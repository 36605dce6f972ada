package adapters

import (
	"context"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/ports"

	"github.com/google/uuid"
)

// InteractionReassigner is the interactions store operation the mover wraps.
type InteractionReassigner interface {
	ReassignUser(ctx context.Context, from, to uuid.UUID) (int64, error)
}

// InteractionMover adapts the interactions repository to the leads domain's
// ports.InteractionMover.
type InteractionMover struct {
	store InteractionReassigner
}

// NewInteractionMover creates a new interaction mover adapter.
func NewInteractionMover(store InteractionReassigner) *InteractionMover {
	return &InteractionMover{store: store}
}

// MoveInteractions re-points every interaction of from to to.
func (a *InteractionMover) MoveInteractions(ctx context.Context, from, to uuid.UUID) (int64, error) {
	return a.store.ReassignUser(ctx, from, to)
}

// Compile-time check.
var _ ports.InteractionMover = (*InteractionMover)(nil)
