package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var (
	_ repository.LocalSaleRepository = (*LocalSaleRepo)(nil)
	_ repository.PurchaseRepository  = (*PurchaseRepo)(nil)
)

const (
	localSaleColumns     = `id, total, sale_type, notes, created_at, created_by`
	localSaleItemColumns = `id, sale_id, inventory_id, product_id, flavor_id, freezer_id, quantity, unit_price`
	purchaseColumns      = `id, provider_id, total, payment_status, paid_at, created_at, created_by`
	purchaseItemColumns  = `id, purchase_id, product_id, flavor_id, freezer_id, quantity, unit_price`
)

// LocalSaleRepo ventas de mostrador sobre PostgreSQL.
type LocalSaleRepo struct {
	q Querier
}

func NewLocalSaleRepository(q Querier) *LocalSaleRepo {
	return &LocalSaleRepo{q: q}
}

func scanLocalSale(row pgx.Row) (*entity.LocalSale, error) {
	var s entity.LocalSale
	if err := row.Scan(&s.ID, &s.Total, &s.SaleType, &s.Notes, &s.CreatedAt, &s.CreatedBy); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *LocalSaleRepo) Create(ctx context.Context, s *entity.LocalSale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO local_sales (`+localSaleColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Total, s.SaleType, s.Notes, s.CreatedAt, s.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert local sale: %w", err)
	}
	return nil
}

func (r *LocalSaleRepo) AddItem(ctx context.Context, it *entity.LocalSaleItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO local_sale_items (`+localSaleItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.SaleID, it.InventoryID, it.ProductID, it.FlavorID, it.FreezerID, it.Quantity, it.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert local sale item: %w", err)
	}
	return nil
}

func (r *LocalSaleRepo) GetByID(ctx context.Context, id string) (*entity.LocalSale, error) {
	s, err := scanLocalSale(r.q.QueryRow(ctx, `SELECT `+localSaleColumns+` FROM local_sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local sale: %w", err)
	}
	return s, nil
}

func (r *LocalSaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.LocalSaleItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+localSaleItemColumns+` FROM local_sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list local sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocalSaleItem
	for rows.Next() {
		var it entity.LocalSaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.InventoryID, &it.ProductID, &it.FlavorID,
			&it.FreezerID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan local sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *LocalSaleRepo) list(ctx context.Context, tail string, args ...any) ([]*entity.LocalSale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+localSaleColumns+` FROM local_sales `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list local sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocalSale
	for rows.Next() {
		s, err := scanLocalSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan local sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *LocalSaleRepo) List(ctx context.Context, limit int) ([]*entity.LocalSale, error) {
	return r.list(ctx, `ORDER BY created_at DESC, id LIMIT $1`, limit)
}

func (r *LocalSaleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.LocalSale, error) {
	return r.list(ctx, `WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC, id`, from, to)
}

// PurchaseRepo compras a proveedores sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.ProviderID, &p.Total, &p.PaymentStatus, &p.PaidAt, &p.CreatedAt, &p.CreatedBy); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO purchases (`+purchaseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.ProviderID, p.Total, p.PaymentStatus, p.PaidAt, p.CreatedAt, p.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) AddItem(ctx context.Context, it *entity.PurchaseItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO purchase_items (`+purchaseItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.PurchaseID, it.ProductID, it.FlavorID, it.FreezerID, it.Quantity, it.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (r *PurchaseRepo) ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseItemColumns+` FROM purchase_items WHERE purchase_id = $1 ORDER BY id`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.FlavorID,
			&it.FreezerID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *PurchaseRepo) List(ctx context.Context, limit int) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
