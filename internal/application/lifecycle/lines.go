// Package lifecycle reúne la validación y conversión de líneas compartida por
// viajes de trabajadores y ventas del dueño.
package lifecycle

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/settlement"
)

// ValidateLoaded exige al menos una línea con pila, producto, sabor, cantidad positiva y precio no negativo.
func ValidateLoaded(items []dto.LoadedItemRequest) error {
	if len(items) == 0 {
		return domain.Invalid("se requiere al menos un producto cargado")
	}
	for i, it := range items {
		if it.InventoryID == "" || it.ProductID == "" || it.FlavorID == "" || it.FreezerID == "" {
			return domain.Invalid("línea cargada %d incompleta", i+1)
		}
		if it.Quantity <= 0 {
			return domain.Invalid("línea cargada %d: la cantidad debe ser positiva", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return domain.Invalid("línea cargada %d: el precio no puede ser negativo", i+1)
		}
	}
	return nil
}

// ValidateReturned valida las devoluciones; la lista vacía es válida (se vendió todo).
func ValidateReturned(items []dto.ReturnedItemRequest) error {
	for i, it := range items {
		if it.ProductID == "" || it.FlavorID == "" || it.DestinationFreezerID == "" {
			return domain.Invalid("línea devuelta %d incompleta", i+1)
		}
		if it.Quantity <= 0 {
			return domain.Invalid("línea devuelta %d: la cantidad debe ser positiva", i+1)
		}
	}
	return nil
}

// NewLoadedItem construye la línea persistida a partir del request.
func NewLoadedItem(parentID string, in dto.LoadedItemRequest) *entity.LoadedItem {
	return &entity.LoadedItem{
		ID:          uuid.New().String(),
		ParentID:    parentID,
		InventoryID: in.InventoryID,
		ProductID:   in.ProductID,
		FlavorID:    in.FlavorID,
		FreezerID:   in.FreezerID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		IsDeformed:  in.IsDeformed,
	}
}

// NewReturnedItem construye la línea devuelta persistida a partir del request.
func NewReturnedItem(parentID string, in dto.ReturnedItemRequest) *entity.ReturnedItem {
	return &entity.ReturnedItem{
		ID:                   uuid.New().String(),
		ParentID:             parentID,
		ProductID:            in.ProductID,
		FlavorID:             in.FlavorID,
		Quantity:             in.Quantity,
		IsDeformed:           in.IsDeformed,
		DestinationFreezerID: in.DestinationFreezerID,
	}
}

// ReturnLines convierte las devoluciones al formato del ledger de inventario.
func ReturnLines(items []dto.ReturnedItemRequest) []inventory.ReturnLine {
	out := make([]inventory.ReturnLine, 0, len(items))
	for _, it := range items {
		out = append(out, inventory.ReturnLine{
			ProductID:            it.ProductID,
			FlavorID:             it.FlavorID,
			Quantity:             it.Quantity,
			IsDeformed:           it.IsDeformed,
			DestinationFreezerID: it.DestinationFreezerID,
		})
	}
	return out
}

// Settle ejecuta el cálculo de liquidación y avisa en el log si hubo devoluciones de más.
func Settle(kind, id string, loaded []*entity.LoadedItem, returned []dto.ReturnedItemRequest) settlement.Result {
	ll := make([]settlement.LoadedLine, 0, len(loaded))
	for _, l := range loaded {
		ll = append(ll, settlement.LoadedLine{
			InventoryID: l.InventoryID,
			ProductID:   l.ProductID,
			FlavorID:    l.FlavorID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	rl := make([]settlement.ReturnedLine, 0, len(returned))
	for _, r := range returned {
		rl = append(rl, settlement.ReturnedLine{ProductID: r.ProductID, FlavorID: r.FlavorID, Quantity: r.Quantity})
	}
	res := settlement.Calculate(ll, rl)
	for _, ex := range res.Excess {
		log.Warn().
			Str(kind, id).
			Str("product_id", ex.Key.ProductID).
			Str("flavor_id", ex.Key.FlavorID).
			Int("loaded", ex.Loaded).
			Int("returned", ex.Returned).
			Msg("devolución mayor que lo cargado; se liquida en cero")
	}
	return res
}
