// Package localsales registra las ventas de mostrador: restan inventario y, salvo los
// regalos, entran a caja en la misma transacción.
package localsales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/cash"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

const defaultListLimit = 50

// UseCase casos de uso de ventas en local.
type UseCase struct {
	txRunner  ports.TxRunner
	repo      repository.LocalSaleRepository
	inventory *inventory.Ledger
	cash      *cash.Ledger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewUseCase(txRunner ports.TxRunner, repo repository.LocalSaleRepository, inv *inventory.Ledger, cashLedger *cash.Ledger) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, inventory: inv, cash: cashLedger, now: time.Now}
}

// Create guarda la venta y sus líneas, resta cada línea de su pila y registra el ingreso
// local_sale por el total. Si alguna pila no alcanza no queda nada registrado.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateLocalSaleRequest, actor entity.Actor) (*dto.LocalSaleWithItems, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	sale := &entity.LocalSale{
		ID:        uuid.New().String(),
		Total:     decimal.Zero,
		SaleType:  in.SaleType,
		Notes:     in.Notes,
		CreatedAt: uc.now(),
		CreatedBy: actor.ID,
	}
	items := make([]*entity.LocalSaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.LocalSaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			InventoryID: it.InventoryID,
			ProductID:   it.ProductID,
			FlavorID:    it.FlavorID,
			FreezerID:   it.FreezerID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
		sale.Total = sale.Total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := r.LocalSales.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := r.LocalSales.AddItem(ctx, item); err != nil {
				return err
			}
			if err := uc.inventory.Subtract(ctx, r.Inventory, item.InventoryID, item.Quantity, actor); err != nil {
				return err
			}
		}
		if sale.PostsCash() && !sale.Total.IsZero() {
			docType, docID := cash.DocRef(audit.TableLocalSales, sale.ID)
			if _, err := uc.cash.Append(ctx, r.Cash, cash.AppendInput{
				Type:           entity.CashLocalSale,
				Amount:         sale.Total,
				Description:    sale.Notes,
				RelatedDocType: docType,
				RelatedDocID:   docID,
			}, actor); err != nil {
				return err
			}
		}
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditCreate, Table: audit.TableLocalSales, RecordID: sale.ID,
			After: dto.LocalSaleWithItems{Sale: sale, Items: items},
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return &dto.LocalSaleWithItems{Sale: sale, Items: items}, nil
}

func validate(in dto.CreateLocalSaleRequest) error {
	if !entity.ValidLocalSaleType(in.SaleType) {
		return domain.Invalid("tipo de venta inválido: %q (local, custom, gift o family)", in.SaleType)
	}
	if len(in.Items) == 0 {
		return domain.Invalid("la venta debe tener al menos un producto")
	}
	for i, it := range in.Items {
		if it.InventoryID == "" || it.ProductID == "" || it.FlavorID == "" || it.FreezerID == "" {
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

// Get devuelve la venta con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.LocalSaleWithItems, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta en local", id)
	}
	items, err := uc.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.LocalSaleWithItems{Sale: sale, Items: items}, nil
}

// List últimas ventas.
func (uc *UseCase) List(ctx context.Context, limit int) ([]*entity.LocalSale, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	return uc.repo.List(ctx, limit)
}

// Today ventas del día en curso (hora local del servidor).
func (uc *UseCase) Today(ctx context.Context) ([]*entity.LocalSale, error) {
	y, m, d := uc.now().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return uc.repo.ListBetween(ctx, from, from.AddDate(0, 0, 1))
}
