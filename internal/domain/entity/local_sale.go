package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta en local.
const (
	LocalSaleLocal  = "local"
	LocalSaleCustom = "custom"
	LocalSaleGift   = "gift" // regalo: descuenta inventario pero no entra a caja
	LocalSaleFamily = "family"
)

// ValidLocalSaleType indica si t es un tipo de venta en local conocido.
func ValidLocalSaleType(t string) bool {
	switch t {
	case LocalSaleLocal, LocalSaleCustom, LocalSaleGift, LocalSaleFamily:
		return true
	}
	return false
}

// LocalSale venta de mostrador. Total = Σ quantity × unit_price de sus líneas.
type LocalSale struct {
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
	SaleType  string          `json:"sale_type"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by"`
}

// PostsCash indica si la venta genera ingreso en caja.
func (s *LocalSale) PostsCash() bool { return s.SaleType != LocalSaleGift }

// LocalSaleItem línea de una venta en local; sale de una pila concreta.
type LocalSaleItem struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	InventoryID string          `json:"inventory_id"`
	ProductID   string          `json:"product_id"`
	FlavorID    string          `json:"flavor_id"`
	FreezerID   string          `json:"freezer_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}
