package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// DefaultMinStockAlert alerta por defecto de una pila vendible nueva.
const DefaultMinStockAlert = 20

// Ledger aplica los movimientos de unidades sobre las pilas. No abre transacciones:
// recibe el repositorio atado a la tx del caso de uso que lo invoca.
type Ledger struct {
	defaultMinStock int
}

// NewLedger construye el ledger. minStock <= 0 usa DefaultMinStockAlert.
func NewLedger(minStock int) *Ledger {
	if minStock <= 0 {
		minStock = DefaultMinStockAlert
	}
	return &Ledger{defaultMinStock: minStock}
}

// Subtract resta qty de la pila con una sola actualización condicional.
// Si no alcanza devuelve *domain.InsufficientStockError y la pila queda intacta.
// Una pila deforme que llega a cero se elimina.
func (l *Ledger) Subtract(ctx context.Context, repo repository.InventoryRepository, pileID string, qty int, actor entity.Actor) error {
	if pileID == "" || qty <= 0 {
		return domain.Invalid("cantidad a restar debe ser positiva")
	}
	ok, err := repo.SubtractIfAvailable(ctx, pileID, qty, actor.ID, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return &domain.InsufficientStockError{InventoryID: pileID, Requested: qty}
	}
	return repo.DeleteIfDepletedDeformed(ctx, pileID)
}

// MergeAdd suma qty a la pila con la clave dada, creándola si no existe (created).
// Las pilas deformes exigen trabajador asignado y no generan alerta de stock.
func (l *Ledger) MergeAdd(ctx context.Context, repo repository.InventoryRepository, key entity.PileKey, qty int, actor entity.Actor) (*entity.InventoryItem, bool, error) {
	if qty <= 0 {
		return nil, false, domain.Invalid("cantidad a sumar debe ser positiva")
	}
	if key.FreezerID == "" || key.ProductID == "" || key.FlavorID == "" || key.ProviderID == "" {
		return nil, false, domain.Invalid("congelador, producto, sabor y proveedor son obligatorios")
	}
	minStock := l.defaultMinStock
	if key.IsDeformed {
		if key.AssignedWorkerID == "" {
			return nil, false, domain.Invalid("una pila deforme debe tener trabajador asignado")
		}
		minStock = 0
	}
	return repo.MergeAdd(ctx, key, qty, minStock, actor.ID, time.Now())
}

// ReturnLine unidades que vuelven al inventario al cerrar un viaje o venta.
type ReturnLine struct {
	ProductID            string
	FlavorID             string
	Quantity             int
	IsDeformed           bool
	DestinationFreezerID string
}

// Restock reingresa las devoluciones. El proveedor se toma de la pila de la que salió la
// línea cargada con el mismo producto y sabor; si esa pila ya no existe se usa cualquier
// pila de ese producto y sabor. Las deformes van a una pila deforme a nombre de holderID.
func (l *Ledger) Restock(
	ctx context.Context,
	repo repository.InventoryRepository,
	loaded []*entity.LoadedItem,
	returned []ReturnLine,
	holderID string,
	actor entity.Actor,
) error {
	for _, r := range returned {
		providerID, err := l.resolveProvider(ctx, repo, loaded, r.ProductID, r.FlavorID)
		if err != nil {
			return err
		}
		key := entity.PileKey{
			FreezerID:  r.DestinationFreezerID,
			ProductID:  r.ProductID,
			FlavorID:   r.FlavorID,
			ProviderID: providerID,
			IsDeformed: r.IsDeformed,
		}
		if r.IsDeformed {
			key.AssignedWorkerID = holderID
		}
		if _, _, err := l.MergeAdd(ctx, repo, key, r.Quantity, actor); err != nil {
			return fmt.Errorf("reingresar devolución %s/%s: %w", r.ProductID, r.FlavorID, err)
		}
	}
	return nil
}

func (l *Ledger) resolveProvider(ctx context.Context, repo repository.InventoryRepository, loaded []*entity.LoadedItem, productID, flavorID string) (string, error) {
	for _, li := range loaded {
		if li.ProductID != productID || li.FlavorID != flavorID {
			continue
		}
		pile, err := repo.GetByID(ctx, li.InventoryID)
		if err != nil {
			return "", err
		}
		if pile != nil {
			return pile.ProviderID, nil
		}
	}
	providerID, err := repo.FindAnyProvider(ctx, productID, flavorID)
	if err != nil {
		return "", err
	}
	if providerID == "" {
		return "", domain.NotFound("proveedor para producto/sabor", productID+"/"+flavorID)
	}
	return providerID, nil
}
