package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/content-suite/content-suite/internal/shared"
)

// Repository defines persistence operations for content items. The state
// columns are written only through SetApproved/SetRejected so that every
// transition flows through the service.
type Repository interface {
	Insert(ctx context.Context, item Item) (Item, error)
	Get(ctx context.Context, id uuid.UUID) (Item, error)
	List(ctx context.Context, state State, limit int) ([]Item, error)
	SetApproved(ctx context.Context, id, approvedBy uuid.UUID) (Item, error)
	SetRejected(ctx context.Context, id uuid.UUID, reason string) (Item, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const itemColumns = `id, brand_manual_id, type, title, text, state, approved_by, rejection_reason, created_by, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	var typ, state string
	var approvedBy *uuid.UUID
	var reason *string
	if err := row.Scan(&it.ID, &it.ManualID, &typ, &it.Title, &it.Text, &state,
		&approvedBy, &reason, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, shared.ErrNotFound
		}
		return Item{}, err
	}
	it.Type = Type(typ)
	it.State = State(state)
	if approvedBy != nil {
		it.ApprovedBy = *approvedBy
	}
	if reason != nil {
		it.RejectionReason = *reason
	}
	return it, nil
}

// Insert persists a new item.
func (r *PGRepository) Insert(ctx context.Context, item Item) (Item, error) {
	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `INSERT INTO content_items
(id, brand_manual_id, type, title, text, state, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING `+itemColumns,
		item.ID, item.ManualID, string(item.Type), item.Title, item.Text, string(item.State), item.CreatedBy, now)
	return scanItem(row)
}

// Get fetches an item by id.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM content_items WHERE id = $1`, id)
	return scanItem(row)
}

// List returns items newest first, optionally filtered by state.
func (r *PGRepository) List(ctx context.Context, state State, limit int) ([]Item, error) {
	var rows pgx.Rows
	var err error
	if state == "" {
		rows, err = r.pool.Query(ctx, `SELECT `+itemColumns+` FROM content_items ORDER BY created_at DESC LIMIT $1`, limit)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT `+itemColumns+` FROM content_items WHERE state = $1 ORDER BY created_at DESC LIMIT $2`, string(state), limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SetApproved overwrites the item state with approved and clears any
// rejection reason.
func (r *PGRepository) SetApproved(ctx context.Context, id, approvedBy uuid.UUID) (Item, error) {
	row := r.pool.QueryRow(ctx, `UPDATE content_items
SET state = $2, approved_by = $3, rejection_reason = NULL, updated_at = NOW()
WHERE id = $1
RETURNING `+itemColumns,
		id, string(StateApproved), approvedBy)
	return scanItem(row)
}

// SetRejected overwrites the item state with rejected and records the reason.
func (r *PGRepository) SetRejected(ctx context.Context, id uuid.UUID, reason string) (Item, error) {
	row := r.pool.QueryRow(ctx, `UPDATE content_items
SET state = $2, rejection_reason = $3, approved_by = NULL, updated_at = NOW()
WHERE id = $1
RETURNING `+itemColumns,
		id, string(StateRejected), reason)
	return scanItem(row)
}

var _ Repository = (*PGRepository)(nil)
