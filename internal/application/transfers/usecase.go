// Package transfers mueve unidades vendibles entre congeladores conservando el proveedor.
package transfers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// UseCase casos de uso de traslados.
type UseCase struct {
	txRunner  ports.TxRunner
	repo      repository.FreezerTransferRepository
	inventory *inventory.Ledger
}

// NewUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewUseCase(txRunner ports.TxRunner, repo repository.FreezerTransferRepository, inv *inventory.Ledger) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, inventory: inv}
}

// Create traslada cada línea desde la pila vendible del congelador origen a la pila
// equivalente (mismo proveedor) del destino. Todo o nada.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateTransferRequest, actor entity.Actor) (*dto.TransferWithItems, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	t := &entity.FreezerTransfer{
		ID:            uuid.New().String(),
		FromFreezerID: in.FromFreezerID,
		ToFreezerID:   in.ToFreezerID,
		Reason:        in.Reason,
		CreatedAt:     time.Now(),
		CreatedBy:     actor.ID,
	}
	items := make([]*entity.TransferItem, 0, len(in.Items))

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		for _, it := range in.Items {
			item := &entity.TransferItem{
				ID:         uuid.New().String(),
				TransferID: t.ID,
				ProductID:  it.ProductID,
				FlavorID:   it.FlavorID,
				Quantity:   it.Quantity,
			}
			if err := r.Transfers.AddItem(ctx, item); err != nil {
				return err
			}
			src, err := r.Inventory.FindSourcePile(ctx, in.FromFreezerID, it.ProductID, it.FlavorID)
			if err != nil {
				return err
			}
			if src == nil {
				return domain.NotFound("inventario en congelador origen", it.ProductID+"/"+it.FlavorID)
			}
			if err := uc.inventory.Subtract(ctx, r.Inventory, src.ID, it.Quantity, actor); err != nil {
				return err
			}
			if _, _, err := uc.inventory.MergeAdd(ctx, r.Inventory, entity.PileKey{
				FreezerID:  in.ToFreezerID,
				ProductID:  it.ProductID,
				FlavorID:   it.FlavorID,
				ProviderID: src.ProviderID,
			}, it.Quantity, actor); err != nil {
				return err
			}
			items = append(items, item)
		}
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditCreate, Table: audit.TableTransfers, RecordID: t.ID,
			After: dto.TransferWithItems{Transfer: t, Items: items},
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return &dto.TransferWithItems{Transfer: t, Items: items}, nil
}

func validate(in dto.CreateTransferRequest) error {
	if in.FromFreezerID == "" || in.ToFreezerID == "" {
		return domain.Invalid("congelador origen y destino son obligatorios")
	}
	if in.FromFreezerID == in.ToFreezerID {
		return domain.Invalid("el congelador origen y destino deben ser distintos")
	}
	if len(in.Items) == 0 {
		return domain.Invalid("se requiere al menos un producto a trasladar")
	}
	for i, it := range in.Items {
		if it.ProductID == "" || it.FlavorID == "" {
			return domain.Invalid("línea %d incompleta", i+1)
		}
		if it.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser positiva", i+1)
		}
	}
	return nil
}

// Get devuelve el traslado con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.TransferWithItems, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("traslado", id)
	}
	items, err := uc.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TransferWithItems{Transfer: t, Items: items}, nil
}

// List últimos traslados.
func (uc *UseCase) List(ctx context.Context, limit int) ([]*entity.FreezerTransfer, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return uc.repo.List(ctx, limit)
}

// ListByFreezer traslados donde el congelador es origen o destino.
func (uc *UseCase) ListByFreezer(ctx context.Context, freezerID string) ([]*entity.FreezerTransfer, error) {
	return uc.repo.ListByFreezer(ctx, freezerID)
}
