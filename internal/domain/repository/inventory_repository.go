package repository

import (
	"context"
	"time"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// InventoryRepository puerto de las pilas de inventario. Usable con pool o dentro de una tx.
// Las lecturas devuelven nil, nil cuando la fila no existe.
type InventoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	ListAll(ctx context.Context) ([]*entity.InventoryItem, error)
	ListByFreezer(ctx context.Context, freezerID string) ([]*entity.InventoryItem, error)
	ListSellable(ctx context.Context) ([]*entity.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error)
	ListWorkerDeformed(ctx context.Context, workerID string) ([]*entity.InventoryItem, error)

	// SubtractIfAvailable resta qty solo si la pila tiene al menos qty unidades.
	// Devuelve false si ninguna fila fue afectada.
	SubtractIfAvailable(ctx context.Context, id string, qty int, actorID string, at time.Time) (bool, error)
	// DeleteIfDepletedDeformed elimina la pila si es deforme y quedó en cero.
	DeleteIfDepletedDeformed(ctx context.Context, id string) error
	// MergeAdd suma qty a la pila con la misma clave o la crea; created indica si la creó.
	MergeAdd(ctx context.Context, key entity.PileKey, qty, minStockAlert int, actorID string, at time.Time) (item *entity.InventoryItem, created bool, err error)
	// FindSourcePile busca la pila vendible sin asignar de mayor cantidad para (congelador, producto, sabor).
	FindSourcePile(ctx context.Context, freezerID, productID, flavorID string) (*entity.InventoryItem, error)
	// FindAnyProvider devuelve el proveedor de cualquier pila con ese producto y sabor ("" si no hay).
	FindAnyProvider(ctx context.Context, productID, flavorID string) (string, error)
	UpdateMinStockAlert(ctx context.Context, id string, minStockAlert int, actorID string, at time.Time) (*entity.InventoryItem, error)
}
