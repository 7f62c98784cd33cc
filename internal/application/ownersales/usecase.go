// Package ownersales gestiona las salidas de venta del propio dueño. Al cerrarse, lo vendido
// entra a caja y sale de inmediato como retiro automático, sin alterar el saldo.
package ownersales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/cash"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/lifecycle"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

const (
	descSale       = "Venta del dueño"
	descWithdrawal = "Retiro automático por venta del dueño"
)

// UseCase casos de uso de ventas del dueño.
type UseCase struct {
	txRunner  ports.TxRunner
	repos     repository.Repos
	inventory *inventory.Ledger
	cash      *cash.Ledger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repos repository.Repos, inv *inventory.Ledger, cashLedger *cash.Ledger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, inventory: inv, cash: cashLedger, now: time.Now}
}

// Create registra la salida del dueño (el actor) con la mercancía cargada.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOwnerSaleRequest, actor entity.Actor) (*entity.OwnerSale, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := lifecycle.ValidateLoaded(in.LoadedItems); err != nil {
		return nil, err
	}
	departure := in.DepartureTime
	if departure.IsZero() {
		departure = uc.now()
	}
	sale := &entity.OwnerSale{
		ID:            uuid.New().String(),
		OwnerID:       actor.ID,
		DepartureTime: departure,
		RouteID:       in.RouteID,
		CreatedAt:     uc.now(),
		CreatedBy:     actor.ID,
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := r.OwnerSales.Create(ctx, sale); err != nil {
			return err
		}
		if sale.RouteID != nil {
			ok, err := r.Routes.IncrementUsage(ctx, *sale.RouteID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.NotFound("ruta", *sale.RouteID)
			}
		}
		for _, li := range in.LoadedItems {
			item := lifecycle.NewLoadedItem(sale.ID, li)
			if err := r.OwnerSales.AddLoadedItem(ctx, item); err != nil {
				return err
			}
			if err := uc.inventory.Subtract(ctx, r.Inventory, item.InventoryID, item.Quantity, actor); err != nil {
				return err
			}
		}
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditCreate, Table: audit.TableOwnerSales, RecordID: sale.ID, After: sale,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Complete cierra una venta abierta. Registra dos movimientos de caja que suman cero:
// la venta (+monto) y el retiro automático (-monto).
func (uc *UseCase) Complete(ctx context.Context, saleID string, in dto.CompleteRequest, actor entity.Actor) (*entity.OwnerSale, error) {
	if saleID == "" {
		return nil, domain.Invalid("sale_id es obligatorio")
	}
	if err := lifecycle.ValidateReturned(in.ReturnedItems); err != nil {
		return nil, err
	}

	var out *entity.OwnerSale
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		before, err := r.OwnerSales.GetOpenForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.NotFound("venta del dueño abierta", saleID)
		}
		loaded, err := r.OwnerSales.ListLoadedItems(ctx, saleID)
		if err != nil {
			return err
		}
		for _, ri := range in.ReturnedItems {
			if err := r.OwnerSales.AddReturnedItem(ctx, lifecycle.NewReturnedItem(saleID, ri)); err != nil {
				return err
			}
		}
		if err := uc.inventory.Restock(ctx, r.Inventory, loaded, lifecycle.ReturnLines(in.ReturnedItems), before.OwnerID, actor); err != nil {
			return err
		}

		res := lifecycle.Settle("owner_sale_id", saleID, loaded, in.ReturnedItems)
		returnTime := uc.now()
		after := *before
		after.ReturnTime = &returnTime
		after.SoldQuantity = res.SoldQuantity
		after.AmountDue = res.AmountDue
		after.AutoWithdrawal = res.AmountDue

		ok, err := r.OwnerSales.Settle(ctx, &after)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound("venta del dueño abierta", saleID)
		}

		docType, docID := cash.DocRef(audit.TableOwnerSales, saleID)
		sale, withdrawal := descSale, descWithdrawal
		if _, err := uc.cash.Append(ctx, r.Cash, cash.AppendInput{
			Type: entity.CashOwnerSale, Amount: after.AmountDue, Description: &sale,
			RelatedDocType: docType, RelatedDocID: docID,
		}, actor); err != nil {
			return err
		}
		if _, err := uc.cash.Append(ctx, r.Cash, cash.AppendInput{
			Type: entity.CashOwnerWithdrawal, Amount: after.AutoWithdrawal.Neg(), Description: &withdrawal,
			RelatedDocType: docType, RelatedDocID: docID,
		}, actor); err != nil {
			return err
		}

		out = &after
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditUpdate, Table: audit.TableOwnerSales, RecordID: saleID,
			Before: before, After: after,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get devuelve la venta con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OwnerSaleWithItems, error) {
	sale, err := uc.repos.OwnerSales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta del dueño", id)
	}
	loaded, err := uc.repos.OwnerSales.ListLoadedItems(ctx, id)
	if err != nil {
		return nil, err
	}
	returned, err := uc.repos.OwnerSales.ListReturnedItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.OwnerSaleWithItems{Sale: sale, LoadedItems: loaded, ReturnedItems: returned}, nil
}

// List últimas ventas del dueño, más recientes primero.
func (uc *UseCase) List(ctx context.Context, limit int) ([]*entity.OwnerSale, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return uc.repos.OwnerSales.List(ctx, limit)
}
