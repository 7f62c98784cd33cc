package repository

import (
	"context"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// OwnerSaleRepository puerto de ventas del dueño y sus líneas.
type OwnerSaleRepository interface {
	Create(ctx context.Context, sale *entity.OwnerSale) error
	AddLoadedItem(ctx context.Context, item *entity.LoadedItem) error
	AddReturnedItem(ctx context.Context, item *entity.ReturnedItem) error
	GetByID(ctx context.Context, id string) (*entity.OwnerSale, error)
	// GetOpenForUpdate devuelve la venta solo si sigue abierta y bloquea la fila.
	GetOpenForUpdate(ctx context.Context, id string) (*entity.OwnerSale, error)
	ListLoadedItems(ctx context.Context, saleID string) ([]*entity.LoadedItem, error)
	ListReturnedItems(ctx context.Context, saleID string) ([]*entity.ReturnedItem, error)
	Settle(ctx context.Context, sale *entity.OwnerSale) (bool, error)
	List(ctx context.Context, limit int) ([]*entity.OwnerSale, error)
}
