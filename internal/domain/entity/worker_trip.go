package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un viaje.
const (
	TripInProgress = "in_progress"
	TripReturned   = "returned"
)

// WorkerTrip viaje de venta de un trabajador. Pasa de in_progress a returned una sola vez.
type WorkerTrip struct {
	ID            string          `json:"id"`
	WorkerID      string          `json:"worker_id"`
	DepartureTime time.Time       `json:"departure_time"`
	ReturnTime    *time.Time      `json:"return_time,omitempty"`
	RouteID       *string         `json:"route_id,omitempty"`
	Status        string          `json:"status"`
	SoldQuantity  int             `json:"sold_quantity"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// LoadedItem línea cargada al salir. ParentID es el viaje o la venta del dueño.
type LoadedItem struct {
	ID          string          `json:"id"`
	ParentID    string          `json:"parent_id"`
	InventoryID string          `json:"inventory_id"`
	ProductID   string          `json:"product_id"`
	FlavorID    string          `json:"flavor_id"`
	FreezerID   string          `json:"freezer_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	IsDeformed  bool            `json:"is_deformed"`
}

// ReturnedItem línea devuelta al cerrar.
type ReturnedItem struct {
	ID                   string `json:"id"`
	ParentID             string `json:"parent_id"`
	ProductID            string `json:"product_id"`
	FlavorID             string `json:"flavor_id"`
	Quantity             int    `json:"quantity"`
	IsDeformed           bool   `json:"is_deformed"`
	DestinationFreezerID string `json:"destination_freezer_id"`
}
