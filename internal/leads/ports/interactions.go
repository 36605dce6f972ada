// Package ports defines the interfaces the leads domain requires from other
// modules. Adapters in internal/adapters implement them so the leads domain
// never imports another module's repository.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// InteractionMover re-points chat interactions from one lead to another.
// It is the only write the leads domain performs on interaction data.
type InteractionMover interface {
	// MoveInteractions reassigns every interaction of from to to and returns
	// how many rows moved.
	MoveInteractions(ctx context.Context, from, to uuid.UUID) (int64, error)
}
