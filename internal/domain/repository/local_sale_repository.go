package repository

import (
	"context"
	"time"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// LocalSaleRepository puerto de ventas en local.
type LocalSaleRepository interface {
	Create(ctx context.Context, s *entity.LocalSale) error
	AddItem(ctx context.Context, item *entity.LocalSaleItem) error
	GetByID(ctx context.Context, id string) (*entity.LocalSale, error)
	ListItems(ctx context.Context, saleID string) ([]*entity.LocalSaleItem, error)
	List(ctx context.Context, limit int) ([]*entity.LocalSale, error)
	// ListBetween ventas con from <= created_at < to, más recientes primero.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.LocalSale, error)
}

// PurchaseRepository puerto de compras a proveedores.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	AddItem(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error)
	List(ctx context.Context, limit int) ([]*entity.Purchase, error)
}
