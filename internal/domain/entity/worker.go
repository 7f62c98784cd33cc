package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker proyección desnormalizada del trabajador: deuda acumulada, unidades vendidas y
// última venta. Se actualiza en cada liquidación y pago.
type Worker struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CurrentDebt decimal.Decimal `json:"current_debt"`
	TotalSales  int             `json:"total_sales"`
	LastSale    *time.Time      `json:"last_sale,omitempty"`
}

// WorkerPayment pago de un trabajador por un viaje liquidado (uno por viaje).
type WorkerPayment struct {
	ID           string          `json:"id"`
	WorkerID     string          `json:"worker_id"`
	TripID       string          `json:"trip_id"`
	Amount       decimal.Decimal `json:"amount"`
	PreviousDebt decimal.Decimal `json:"previous_debt"`
	NewDebt      decimal.Decimal `json:"new_debt"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    string          `json:"created_by"`
}

// Route ruta de venta; el núcleo solo incrementa su contador de uso.
type Route struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}
