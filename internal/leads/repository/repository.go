// Package repository persists leads in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("lead not found")

const leadColumns = `id, name, phone, email, location, program, preferred_college, preferred_course, created_at, updated_at`

type Repository struct {
	db DB
}

func New(db DB) *Repository {
	return &Repository{db: db}
}

// FindByPhone returns the newest lead stored under phone.
func (r *Repository) FindByPhone(ctx context.Context, phone string) (domain.Lead, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE phone = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, phone)

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	row := r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

// Insert stores a new lead. The caller assigns ID and CreatedAt.
func (r *Repository) Insert(ctx context.Context, lead domain.Lead) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		lead.ID, lead.Name, lead.Phone, lead.Email,
		lead.Profile.Location, lead.Profile.Program, lead.Profile.PreferredCollege, lead.Profile.PreferredCourse,
		lead.CreatedAt, lead.UpdatedAt,
	)
	return err
}

// UpdateProfile overwrites every mutable column of an existing lead.
func (r *Repository) UpdateProfile(ctx context.Context, lead domain.Lead) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE leads
		SET name = $2, phone = $3, email = $4, location = $5, program = $6,
			preferred_college = $7, preferred_course = $8, updated_at = $9
		WHERE id = $1
	`,
		lead.ID, lead.Name, lead.Phone, lead.Email,
		lead.Profile.Location, lead.Profile.Program, lead.Profile.PreferredCollege, lead.Profile.PreferredCourse,
		lead.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every lead, newest first. Ties on created_at are broken by id
// so the order is deterministic across runs.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

// List returns one page of leads matching params.Search plus the total match count.
func (r *Repository) List(ctx context.Context, params ListParams) ([]domain.Lead, int, error) {
	where, args := buildLeadListWhere(params)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM leads WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	argIdx := len(args) + 1
	args = append(args, limit, params.Offset)

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, leadColumns, where, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads, err := collectLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total)
	return total, err
}

func buildLeadListWhere(params ListParams) (string, []any) {
	search := strings.TrimSpace(params.Search)
	if search == "" {
		return "TRUE", nil
	}

	return `(name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1 OR location ILIKE $1 OR preferred_college ILIKE $1)`,
		[]any{"%" + escapeLike(search) + "%"}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.Email,
		&lead.Profile.Location, &lead.Profile.Program, &lead.Profile.PreferredCollege, &lead.Profile.PreferredCourse,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

func collectLeads(rows pgx.Rows) ([]domain.Lead, error) {
	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leads, nil
}
