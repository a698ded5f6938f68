package brand

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/content-suite/content-suite/internal/shared"
)

// Repository defines persistence operations for brand manuals.
type Repository interface {
	Insert(ctx context.Context, manual Manual) (Manual, error)
	Get(ctx context.Context, id uuid.UUID) (Manual, error)
	List(ctx context.Context, limit int) ([]Manual, error)
	Update(ctx context.Context, id uuid.UUID, patch ManualPatch) (Manual, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const manualColumns = `id, name, product, tone, target_audience, restrictions, markdown, version, created_by, created_at, updated_at`

func scanManual(row pgx.Row) (Manual, error) {
	var m Manual
	if err := row.Scan(&m.ID, &m.Name, &m.Product, &m.Tone, &m.TargetAudience, &m.Restrictions,
		&m.Markdown, &m.Version, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Manual{}, shared.ErrNotFound
		}
		return Manual{}, err
	}
	return m, nil
}

// Insert persists a new manual.
func (r *PGRepository) Insert(ctx context.Context, manual Manual) (Manual, error) {
	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `INSERT INTO brand_manuals
(id, name, product, tone, target_audience, restrictions, markdown, version, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING `+manualColumns,
		manual.ID, manual.Name, manual.Product, manual.Tone, manual.TargetAudience,
		manual.Restrictions, manual.Markdown, manual.Version, manual.CreatedBy, now)
	return scanManual(row)
}

// Get fetches a manual by id.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (Manual, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+manualColumns+` FROM brand_manuals WHERE id = $1`, id)
	return scanManual(row)
}

// List returns manuals newest first.
func (r *PGRepository) List(ctx context.Context, limit int) ([]Manual, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+manualColumns+` FROM brand_manuals ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var manuals []Manual
	for rows.Next() {
		m, err := scanManual(rows)
		if err != nil {
			return nil, err
		}
		manuals = append(manuals, m)
	}
	return manuals, rows.Err()
}

// Update applies a field patch, bumps the version and returns the new record.
func (r *PGRepository) Update(ctx context.Context, id uuid.UUID, patch ManualPatch) (Manual, error) {
	row := r.pool.QueryRow(ctx, `UPDATE brand_manuals SET
name = COALESCE($2, name),
product = COALESCE($3, product),
tone = COALESCE($4, tone),
target_audience = COALESCE($5, target_audience),
restrictions = COALESCE($6, restrictions),
markdown = COALESCE($7, markdown),
version = version + 1,
updated_at = NOW()
WHERE id = $1
RETURNING `+manualColumns,
		id, patch.Name, patch.Product, patch.Tone, patch.TargetAudience, patch.Restrictions, patch.Markdown)
	return scanManual(row)
}

// Delete removes a manual.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brand_manuals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
