package entity

import "time"

// FreezerTransfer traslado de unidades entre dos congeladores distintos.
type FreezerTransfer struct {
	ID            string    `json:"id"`
	FromFreezerID string    `json:"from_freezer_id"`
	ToFreezerID   string    `json:"to_freezer_id"`
	Reason        *string   `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
}

// TransferItem línea de un traslado.
type TransferItem struct {
	ID         string `json:"id"`
	TransferID string `json:"transfer_id"`
	ProductID  string `json:"product_id"`
	FlavorID   string `json:"flavor_id"`
	Quantity   int    `json:"quantity"`
}
