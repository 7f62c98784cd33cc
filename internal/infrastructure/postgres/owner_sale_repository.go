package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ repository.OwnerSaleRepository = (*OwnerSaleRepo)(nil)

// total_amount es el monto vendido (AmountDue en la entidad).
const ownerSaleColumns = `id, owner_id, departure_time, return_time, route_id, sold_quantity,
	total_amount, auto_withdrawal, created_at, created_by`

// OwnerSaleRepo ventas del dueño sobre PostgreSQL.
type OwnerSaleRepo struct {
	q Querier
}

func NewOwnerSaleRepository(q Querier) *OwnerSaleRepo {
	return &OwnerSaleRepo{q: q}
}

func scanOwnerSale(row pgx.Row) (*entity.OwnerSale, error) {
	var s entity.OwnerSale
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.DepartureTime, &s.ReturnTime, &s.RouteID, &s.SoldQuantity,
		&s.AmountDue, &s.AutoWithdrawal, &s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *OwnerSaleRepo) Create(ctx context.Context, s *entity.OwnerSale) error {
	query := `INSERT INTO owner_sales (` + ownerSaleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OwnerID, s.DepartureTime, s.ReturnTime, s.RouteID, s.SoldQuantity,
		s.AmountDue, s.AutoWithdrawal, s.CreatedAt, s.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert owner sale: %w", err)
	}
	return nil
}

func (r *OwnerSaleRepo) AddLoadedItem(ctx context.Context, it *entity.LoadedItem) error {
	return saleLines.addLoaded(ctx, r.q, it)
}

func (r *OwnerSaleRepo) AddReturnedItem(ctx context.Context, it *entity.ReturnedItem) error {
	return saleLines.addReturned(ctx, r.q, it)
}

func (r *OwnerSaleRepo) get(ctx context.Context, query, id string) (*entity.OwnerSale, error) {
	s, err := scanOwnerSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owner sale: %w", err)
	}
	return s, nil
}

func (r *OwnerSaleRepo) GetByID(ctx context.Context, id string) (*entity.OwnerSale, error) {
	return r.get(ctx, `SELECT `+ownerSaleColumns+` FROM owner_sales WHERE id = $1`, id)
}

func (r *OwnerSaleRepo) GetOpenForUpdate(ctx context.Context, id string) (*entity.OwnerSale, error) {
	return r.get(ctx, `SELECT `+ownerSaleColumns+` FROM owner_sales
		WHERE id = $1 AND return_time IS NULL FOR UPDATE`, id)
}

func (r *OwnerSaleRepo) ListLoadedItems(ctx context.Context, saleID string) ([]*entity.LoadedItem, error) {
	return saleLines.listLoaded(ctx, r.q, saleID)
}

func (r *OwnerSaleRepo) ListReturnedItems(ctx context.Context, saleID string) ([]*entity.ReturnedItem, error) {
	return saleLines.listReturned(ctx, r.q, saleID)
}

func (r *OwnerSaleRepo) Settle(ctx context.Context, s *entity.OwnerSale) (bool, error) {
	query := `
		UPDATE owner_sales
		SET return_time = $1, sold_quantity = $2, total_amount = $3, auto_withdrawal = $4
		WHERE id = $5 AND return_time IS NULL`
	tag, err := r.q.Exec(ctx, query, s.ReturnTime, s.SoldQuantity, s.AmountDue, s.AutoWithdrawal, s.ID)
	if err != nil {
		return false, fmt.Errorf("settle owner sale: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OwnerSaleRepo) List(ctx context.Context, limit int) ([]*entity.OwnerSale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ownerSaleColumns+` FROM owner_sales
		ORDER BY departure_time DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list owner sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.OwnerSale
	for rows.Next() {
		s, err := scanOwnerSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan owner sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
