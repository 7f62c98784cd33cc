package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// LoadedItemRequest línea cargada al salir (viaje o venta del dueño).
type LoadedItemRequest struct {
	InventoryID string          `json:"inventory_id"`
	ProductID   string          `json:"product_id"`
	FlavorID    string          `json:"flavor_id"`
	FreezerID   string          `json:"freezer_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	IsDeformed  bool            `json:"is_deformed"`
}

// ReturnedItemRequest línea devuelta al cerrar.
type ReturnedItemRequest struct {
	ProductID            string `json:"product_id"`
	FlavorID             string `json:"flavor_id"`
	Quantity             int    `json:"quantity"`
	IsDeformed           bool   `json:"is_deformed"`
	DestinationFreezerID string `json:"destination_freezer_id"`
}

// CreateTripRequest body para POST /api/trips.
type CreateTripRequest struct {
	WorkerID      string              `json:"worker_id"`
	DepartureTime time.Time           `json:"departure_time"`
	RouteID       *string             `json:"route_id,omitempty"`
	LoadedItems   []LoadedItemRequest `json:"loaded_items"`
}

// CompleteRequest body para cerrar un viaje o una venta del dueño.
type CompleteRequest struct {
	ReturnedItems []ReturnedItemRequest `json:"returned_items"`
}

// TripWithItems viaje con sus líneas cargadas y devueltas.
type TripWithItems struct {
	Trip          *entity.WorkerTrip     `json:"trip"`
	LoadedItems   []*entity.LoadedItem   `json:"loaded_items"`
	ReturnedItems []*entity.ReturnedItem `json:"returned_items"`
}

// CreateOwnerSaleRequest body para POST /api/owner-sales.
type CreateOwnerSaleRequest struct {
	DepartureTime time.Time           `json:"departure_time"`
	RouteID       *string             `json:"route_id,omitempty"`
	LoadedItems   []LoadedItemRequest `json:"loaded_items"`
}

// OwnerSaleWithItems venta del dueño con sus líneas.
type OwnerSaleWithItems struct {
	Sale          *entity.OwnerSale      `json:"sale"`
	LoadedItems   []*entity.LoadedItem   `json:"loaded_items"`
	ReturnedItems []*entity.ReturnedItem `json:"returned_items"`
}
