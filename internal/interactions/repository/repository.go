// Package repository persists chat interactions in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrLeadNotFound is returned by Create when user_id no longer names a lead,
// typically because the duplicate reconciler merged it away.
var ErrLeadNotFound = errors.New("lead not found")

const fkViolation = "23503"

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Interaction is one stored chat turn.
type Interaction struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Message          string
	BotResponse      string
	DetectedColleges []string
	CreatedAt        time.Time
}

// InteractionWithLead is an interaction joined with its lead's contact details.
type InteractionWithLead struct {
	Interaction
	LeadName  string
	LeadPhone string
	LeadEmail string
}

// CreateParams holds the fields a caller supplies for a new interaction.
type CreateParams struct {
	UserID           uuid.UUID
	Message          string
	BotResponse      string
	DetectedColleges []string
}

// ListParams filters and paginates the admin transcript listing.
type ListParams struct {
	Search string
	LeadID *uuid.UUID
	Limit  int
	Offset int
}

// CollegeMention counts how often a college was tagged.
type CollegeMention struct {
	College string
	Count   int
}

type Repository struct {
	db DB
}

func New(db DB) *Repository {
	return &Repository{db: db}
}

// Create appends an interaction. The database assigns id and created_at.
func (r *Repository) Create(ctx context.Context, params CreateParams) error {
	tags := params.DetectedColleges
	if tags == nil {
		tags = []string{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO interactions (user_id, message, bot_response, detected_colleges)
		VALUES ($1, $2, $3, $4)
	`, params.UserID, params.Message, params.BotResponse, tags)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return fmt.Errorf("create interaction for %s: %w", params.UserID, ErrLeadNotFound)
		}
		return err
	}
	return nil
}

// ReassignUser re-points every interaction of from to to in one statement.
func (r *Repository) ReassignUser(ctx context.Context, from, to uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE interactions SET user_id = $2 WHERE user_id = $1`, from, to)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListWithLeads returns one page of interactions, newest first, joined with
// lead contact details, plus the total match count.
func (r *Repository) ListWithLeads(ctx context.Context, params ListParams) ([]InteractionWithLead, int, error) {
	where, args := buildInteractionListWhere(params)

	var total int
	countQuery := "SELECT COUNT(*) FROM interactions i JOIN leads l ON l.id = i.user_id WHERE " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	argIdx := len(args) + 1
	args = append(args, limit, params.Offset)

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT i.id, i.user_id, i.message, i.bot_response, i.detected_colleges, i.created_at,
			l.name, l.phone, l.email
		FROM interactions i
		JOIN leads l ON l.id = i.user_id
		WHERE %s
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]InteractionWithLead, 0)
	for rows.Next() {
		var item InteractionWithLead
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Message, &item.BotResponse, &item.DetectedColleges, &item.CreatedAt,
			&item.LeadName, &item.LeadPhone, &item.LeadEmail,
		); err != nil {
			return nil, 0, err
		}
		if item.DetectedColleges == nil {
			item.DetectedColleges = []string{}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Count returns the number of stored interactions.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&total)
	return total, err
}

// TopColleges returns the most frequently tagged colleges.
func (r *Repository) TopColleges(ctx context.Context, limit int) ([]CollegeMention, error) {
	rows, err := r.db.Query(ctx, `
		SELECT college, COUNT(*) AS mentions
		FROM interactions, unnest(detected_colleges) AS college
		GROUP BY college
		ORDER BY mentions DESC, college ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentions := make([]CollegeMention, 0)
	for rows.Next() {
		var m CollegeMention
		if err := rows.Scan(&m.College, &m.Count); err != nil {
			return nil, err
		}
		mentions = append(mentions, m)
	}
	return mentions, rows.Err()
}

func buildInteractionListWhere(params ListParams) (string, []any) {
	clauses := []string{"TRUE"}
	args := make([]any, 0, 2)

	if params.LeadID != nil {
		args = append(args, *params.LeadID)
		clauses = append(clauses, fmt.Sprintf("i.user_id = $%d", len(args)))
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		args = append(args, "%"+likeEscaper.Replace(search)+"%")
		idx := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(l.name ILIKE $%[1]d OR i.message ILIKE $%[1]d OR i.bot_response ILIKE $%[1]d OR array_to_string(i.detected_colleges, ' ') ILIKE $%[1]d)",
			idx,
		))
	}

	return strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
