package repository

import (
	"context"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// FreezerTransferRepository puerto de traslados entre congeladores.
type FreezerTransferRepository interface {
	Create(ctx context.Context, t *entity.FreezerTransfer) error
	AddItem(ctx context.Context, item *entity.TransferItem) error
	GetByID(ctx context.Context, id string) (*entity.FreezerTransfer, error)
	ListItems(ctx context.Context, transferID string) ([]*entity.TransferItem, error)
	List(ctx context.Context, limit int) ([]*entity.FreezerTransfer, error)
	ListByFreezer(ctx context.Context, freezerID string) ([]*entity.FreezerTransfer, error)
}
