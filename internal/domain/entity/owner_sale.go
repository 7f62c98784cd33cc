package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerSale salida de venta del propio dueño. Abierta mientras ReturnTime es nil.
// Al cerrarse, AutoWithdrawal = AmountDue: el dueño retira lo que vendió.
type OwnerSale struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	DepartureTime  time.Time       `json:"departure_time"`
	ReturnTime     *time.Time      `json:"return_time,omitempty"`
	RouteID        *string         `json:"route_id,omitempty"`
	SoldQuantity   int             `json:"sold_quantity"`
	AmountDue      decimal.Decimal `json:"amount_due"`
	AutoWithdrawal decimal.Decimal `json:"auto_withdrawal"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// IsOpen indica si la venta aún no se ha cerrado.
func (s *OwnerSale) IsOpen() bool { return s.ReturnTime == nil }
