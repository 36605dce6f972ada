package repository

import (
	"context"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// =====================================
// Segregated Interfaces
// =====================================

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	FindByPhone(ctx context.Context, phone string) (domain.Lead, error)
	List(ctx context.Context, params ListParams) ([]domain.Lead, int, error)
	Count(ctx context.Context) (int, error)
}

// LeadWriter provides write operations used by registration.
type LeadWriter interface {
	Insert(ctx context.Context, lead domain.Lead) error
	UpdateProfile(ctx context.Context, lead domain.Lead) error
}

// LeadCleanupStore is what the duplicate reconciler needs from storage.
type LeadCleanupStore interface {
	ListAll(ctx context.Context) ([]domain.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListParams filters and paginates the admin lead listing.
type ListParams struct {
	Search string
	Limit  int
	Offset int
}

var (
	_ LeadReader       = (*Repository)(nil)
	_ LeadWriter       = (*Repository)(nil)
	_ LeadCleanupStore = (*Repository)(nil)
)
