package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ repository.FreezerTransferRepository = (*FreezerTransferRepo)(nil)

const transferColumns = `id, from_freezer_id, to_freezer_id, reason, created_at, created_by`

// FreezerTransferRepo traslados entre congeladores sobre PostgreSQL.
type FreezerTransferRepo struct {
	q Querier
}

func NewFreezerTransferRepository(q Querier) *FreezerTransferRepo {
	return &FreezerTransferRepo{q: q}
}

func scanTransfer(row pgx.Row) (*entity.FreezerTransfer, error) {
	var t entity.FreezerTransfer
	if err := row.Scan(&t.ID, &t.FromFreezerID, &t.ToFreezerID, &t.Reason, &t.CreatedAt, &t.CreatedBy); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *FreezerTransferRepo) Create(ctx context.Context, t *entity.FreezerTransfer) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO freezer_transfers (`+transferColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.FromFreezerID, t.ToFreezerID, t.Reason, t.CreatedAt, t.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert freezer transfer: %w", err)
	}
	return nil
}

func (r *FreezerTransferRepo) AddItem(ctx context.Context, it *entity.TransferItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO freezer_transfer_items (id, transfer_id, product_id, flavor_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.TransferID, it.ProductID, it.FlavorID, it.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert freezer transfer item: %w", err)
	}
	return nil
}

func (r *FreezerTransferRepo) GetByID(ctx context.Context, id string) (*entity.FreezerTransfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM freezer_transfers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get freezer transfer: %w", err)
	}
	return t, nil
}

func (r *FreezerTransferRepo) ListItems(ctx context.Context, transferID string) ([]*entity.TransferItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, transfer_id, product_id, flavor_id, quantity
		FROM freezer_transfer_items WHERE transfer_id = $1 ORDER BY id`, transferID)
	if err != nil {
		return nil, fmt.Errorf("list freezer transfer items: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferItem
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.FlavorID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan freezer transfer item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *FreezerTransferRepo) list(ctx context.Context, where string, args ...any) ([]*entity.FreezerTransfer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+transferColumns+` FROM freezer_transfers `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list freezer transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.FreezerTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan freezer transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *FreezerTransferRepo) List(ctx context.Context, limit int) ([]*entity.FreezerTransfer, error) {
	return r.list(ctx, `ORDER BY created_at DESC, id LIMIT $1`, limit)
}

func (r *FreezerTransferRepo) ListByFreezer(ctx context.Context, freezerID string) ([]*entity.FreezerTransfer, error) {
	return r.list(ctx, `WHERE from_freezer_id = $1 OR to_freezer_id = $1 ORDER BY created_at DESC, id`, freezerID)
}
