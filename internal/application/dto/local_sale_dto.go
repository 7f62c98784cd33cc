package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// LocalSaleItemRequest línea vendida en mostrador.
type LocalSaleItemRequest struct {
	InventoryID string          `json:"inventory_id"`
	ProductID   string          `json:"product_id"`
	FlavorID    string          `json:"flavor_id"`
	FreezerID   string          `json:"freezer_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateLocalSaleRequest body para POST /api/local-sales.
type CreateLocalSaleRequest struct {
	SaleType string                 `json:"sale_type"`
	Notes    *string                `json:"notes,omitempty"`
	Items    []LocalSaleItemRequest `json:"items"`
}

// LocalSaleWithItems venta en local con sus líneas.
type LocalSaleWithItems struct {
	Sale  *entity.LocalSale       `json:"sale"`
	Items []*entity.LocalSaleItem `json:"items"`
}

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	FlavorID  string          `json:"flavor_id"`
	FreezerID string          `json:"freezer_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	ProviderID    string                `json:"provider_id"`
	PaymentStatus string                `json:"payment_status"`
	Items         []PurchaseItemRequest `json:"items"`
}

// PurchaseWithItems compra con sus líneas.
type PurchaseWithItems struct {
	Purchase *entity.Purchase       `json:"purchase"`
	Items    []*entity.PurchaseItem `json:"items"`
}
