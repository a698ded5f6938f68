package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/content-suite/content-suite/internal/shared"
)

// Repository defines persistence operations for audit records. Records are
// insert-only; there is no update path.
type Repository interface {
	Insert(ctx context.Context, record Record) (Record, error)
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	ListByContent(ctx context.Context, contentID uuid.UUID) ([]Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const recordColumns = `id, content_id, image_reference, compliant, score, analysis, audited_by, created_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	if err := row.Scan(&rec.ID, &rec.ContentID, &rec.ImageRef, &rec.Compliant, &rec.Score,
		&rec.Analysis, &rec.AuditedBy, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, shared.ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// Insert persists a new audit record.
func (r *PGRepository) Insert(ctx context.Context, record Record) (Record, error) {
	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `INSERT INTO audit_records
(id, content_id, image_reference, compliant, score, analysis, audited_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+recordColumns,
		record.ID, record.ContentID, record.ImageRef, record.Compliant, record.Score,
		record.Analysis, record.AuditedBy, now)
	return scanRecord(row)
}

// Get fetches a record by id.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM audit_records WHERE id = $1`, id)
	return scanRecord(row)
}

// ListByContent returns all audits of a content item, oldest first.
func (r *PGRepository) ListByContent(ctx context.Context, contentID uuid.UUID) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+` FROM audit_records WHERE content_id = $1 ORDER BY created_at ASC`, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// List returns the most recent audits across all content.
func (r *PGRepository) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+` FROM audit_records ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
