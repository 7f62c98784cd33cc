// Package purchases registra compras a proveedores: cada línea ingresa al inventario
// fusionándose con la pila vendible del mismo congelador, producto, sabor y proveedor.
package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// UseCase casos de uso de compras.
type UseCase struct {
	txRunner  ports.TxRunner
	repo      repository.PurchaseRepository
	inventory *inventory.Ledger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewUseCase(txRunner ports.TxRunner, repo repository.PurchaseRepository, inv *inventory.Ledger) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, inventory: inv, now: time.Now}
}

// Create guarda la compra con sus líneas y suma cada línea al inventario. Todo o nada.
// La compra no mueve caja; el pago a proveedores se registra como gasto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest, actor entity.Actor) (*dto.PurchaseWithItems, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Purchase{
		ID:            uuid.New().String(),
		ProviderID:    in.ProviderID,
		Total:         decimal.Zero,
		PaymentStatus: in.PaymentStatus,
		CreatedAt:     now,
		CreatedBy:     actor.ID,
	}
	if p.PaymentStatus == entity.PurchasePaid {
		p.PaidAt = &now
	}
	items := make([]*entity.PurchaseItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: p.ID,
			ProductID:  it.ProductID,
			FlavorID:   it.FlavorID,
			FreezerID:  it.FreezerID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
		p.Total = p.Total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := r.Purchases.Create(ctx, p); err != nil {
			return err
		}
		for _, item := range items {
			if err := r.Purchases.AddItem(ctx, item); err != nil {
				return err
			}
			if _, _, err := uc.inventory.MergeAdd(ctx, r.Inventory, entity.PileKey{
				FreezerID:  item.FreezerID,
				ProductID:  item.ProductID,
				FlavorID:   item.FlavorID,
				ProviderID: p.ProviderID,
			}, item.Quantity, actor); err != nil {
				return err
			}
		}
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditCreate, Table: audit.TablePurchases, RecordID: p.ID,
			After: dto.PurchaseWithItems{Purchase: p, Items: items},
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseWithItems{Purchase: p, Items: items}, nil
}

func validate(in dto.CreatePurchaseRequest) error {
	if in.ProviderID == "" {
		return domain.Invalid("provider_id es obligatorio")
	}
	if in.PaymentStatus != entity.PurchasePaid && in.PaymentStatus != entity.PurchaseCredit {
		return domain.Invalid("payment_status debe ser 'paid' o 'credit'")
	}
	if len(in.Items) == 0 {
		return domain.Invalid("la compra debe tener al menos un producto")
	}
	for i, it := range in.Items {
		if it.ProductID == "" || it.FlavorID == "" || it.FreezerID == "" {
			return domain.Invalid("línea %d incompleta", i+1)
		}
		if it.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser positiva", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return domain.Invalid("línea %d: el precio no puede ser negativo", i+1)
		}
	}
	return nil
}

// Get devuelve la compra con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PurchaseWithItems, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("compra", id)
	}
	items, err := uc.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseWithItems{Purchase: p, Items: items}, nil
}

// List últimas compras.
func (uc *UseCase) List(ctx context.Context, limit int) ([]*entity.Purchase, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return uc.repo.List(ctx, limit)
}
