package dto

import "github.com/jhoicas/helados-api/internal/domain/entity"

// TransferItemRequest línea de traslado.
type TransferItemRequest struct {
	ProductID string `json:"product_id"`
	FlavorID  string `json:"flavor_id"`
	Quantity  int    `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromFreezerID string                `json:"from_freezer_id"`
	ToFreezerID   string                `json:"to_freezer_id"`
	Reason        *string               `json:"reason,omitempty"`
	Items         []TransferItemRequest `json:"items"`
}

// TransferWithItems traslado con sus líneas.
type TransferWithItems struct {
	Transfer *entity.FreezerTransfer `json:"transfer"`
	Items    []*entity.TransferItem  `json:"items"`
}
