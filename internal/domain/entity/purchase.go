package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una compra.
const (
	PurchasePaid   = "paid"
	PurchaseCredit = "credit"
)

// Purchase compra a un proveedor; sus líneas ingresan al inventario.
type Purchase struct {
	ID            string          `json:"id"`
	ProviderID    string          `json:"provider_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentStatus string          `json:"payment_status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// PurchaseItem línea de compra.
type PurchaseItem struct {
	ID         string          `json:"id"`
	PurchaseID string          `json:"purchase_id"`
	ProductID  string          `json:"product_id"`
	FlavorID   string          `json:"flavor_id"`
	FreezerID  string          `json:"freezer_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}
