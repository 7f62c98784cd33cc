package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// UseCase consultas y movimientos sueltos de inventario.
// Cada movimiento corre en su propia transacción y queda auditado.
type UseCase struct {
	txRunner ports.TxRunner
	repo     repository.InventoryRepository
	ledger   *Ledger
}

// NewUseCase construye el caso de uso. repo se usa solo para lecturas fuera de transacción.
func NewUseCase(txRunner ports.TxRunner, repo repository.InventoryRepository, ledger *Ledger) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, ledger: ledger}
}

func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("inventario", id)
	}
	return item, nil
}

func (uc *UseCase) ListAll(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.repo.ListAll(ctx)
}

func (uc *UseCase) ListByFreezer(ctx context.Context, freezerID string) ([]*entity.InventoryItem, error) {
	return uc.repo.ListByFreezer(ctx, freezerID)
}

// ListSellable pilas no deformes.
func (uc *UseCase) ListSellable(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.repo.ListSellable(ctx)
}

// ListLowStock pilas vendibles en o por debajo de su alerta. Nunca incluye deformes.
func (uc *UseCase) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.repo.ListLowStock(ctx)
}

func (uc *UseCase) ListWorkerDeformed(ctx context.Context, workerID string) ([]*entity.InventoryItem, error) {
	return uc.repo.ListWorkerDeformed(ctx, workerID)
}

// Subtract resta unidades de una pila (p. ej. merma o ajuste).
func (uc *UseCase) Subtract(ctx context.Context, pileID string, qty int, actor entity.Actor) error {
	if pileID == "" || qty <= 0 {
		return domain.Invalid("inventory_id y quantity > 0 son obligatorios")
	}
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		before, err := r.Inventory.GetByID(ctx, pileID)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.NotFound("inventario", pileID)
		}
		if err := uc.ledger.Subtract(ctx, r.Inventory, pileID, qty, actor); err != nil {
			return err
		}
		after, err := r.Inventory.GetByID(ctx, pileID)
		if err != nil {
			return err
		}
		action := entity.AuditUpdate
		if after == nil {
			action = entity.AuditDelete
		}
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: action, Table: audit.TableInventory, RecordID: pileID,
			Before: before, After: after,
		}, actor)
	})
}

// MergeAdd suma unidades a la pila con la clave indicada.
func (uc *UseCase) MergeAdd(ctx context.Context, in dto.MergeAddRequest, actor entity.Actor) (*entity.InventoryItem, error) {
	key := entity.PileKey{
		FreezerID:        in.FreezerID,
		ProductID:        in.ProductID,
		FlavorID:         in.FlavorID,
		ProviderID:       in.ProviderID,
		IsDeformed:       in.IsDeformed,
		AssignedWorkerID: in.AssignedWorkerID,
	}
	var out *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		item, created, err := uc.ledger.MergeAdd(ctx, r.Inventory, key, in.Quantity, actor)
		if err != nil {
			return err
		}
		out = item
		rec := audit.Input{Action: entity.AuditCreate, Table: audit.TableInventory, RecordID: item.ID, After: item}
		if !created {
			before := *item
			before.Quantity -= in.Quantity
			rec.Action = entity.AuditUpdate
			rec.Before = &before
		}
		return audit.Record(ctx, r.Audit, rec, actor)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddStock ingreso de compra a una pila vendible sin asignar.
func (uc *UseCase) AddStock(ctx context.Context, in dto.AddStockRequest, actor entity.Actor) (*entity.InventoryItem, error) {
	return uc.MergeAdd(ctx, dto.MergeAddRequest{
		FreezerID:  in.FreezerID,
		ProductID:  in.ProductID,
		FlavorID:   in.FlavorID,
		ProviderID: in.ProviderID,
		Quantity:   in.Quantity,
	}, actor)
}

// UpdateMinStockAlert cambia la alerta de una pila vendible.
func (uc *UseCase) UpdateMinStockAlert(ctx context.Context, id string, minStock int, actor entity.Actor) (*entity.InventoryItem, error) {
	if minStock < 0 {
		return nil, domain.Invalid("min_stock_alert no puede ser negativo")
	}
	var out *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		before, err := r.Inventory.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.NotFound("inventario", id)
		}
		if before.IsDeformed {
			return domain.Invalid("las pilas deformes no tienen alerta de stock")
		}
		after, err := r.Inventory.UpdateMinStockAlert(ctx, id, minStock, actor.ID, time.Now())
		if err != nil {
			return err
		}
		out = after
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditUpdate, Table: audit.TableInventory, RecordID: id,
			Before: before, After: after,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
