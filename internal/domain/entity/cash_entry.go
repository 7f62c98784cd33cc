package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CashWorkerTrip      = "worker_trip"      // liquidación de viaje de trabajador
	CashWorkerPayment   = "worker_payment"   // pago registrado manualmente
	CashLocalSale       = "local_sale"       // venta en local
	CashOwnerSale       = "owner_sale"       // venta del dueño
	CashOwnerWithdrawal = "owner_withdrawal" // retiro del dueño
	CashExpense         = "expense"          // gasto
	CashAdjustment      = "adjustment"       // ajuste manual
)

// ValidCashType indica si t es un tipo de movimiento conocido.
func ValidCashType(t string) bool {
	switch t {
	case CashWorkerTrip, CashWorkerPayment, CashLocalSale, CashOwnerSale,
		CashOwnerWithdrawal, CashExpense, CashAdjustment:
		return true
	}
	return false
}

// CashEntry es un movimiento del libro de caja. Amount es con signo y Balance es el saldo
// después de aplicarlo: Balance(n) = Balance(n-1) + Amount(n). Seq ordena el libro.
type CashEntry struct {
	ID             string          `json:"id"`
	Seq            int64           `json:"seq"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Balance        decimal.Decimal `json:"balance"`
	Description    *string         `json:"description,omitempty"`
	Category       *string         `json:"category,omitempty"`
	RelatedDocType *string         `json:"related_doc_type,omitempty"`
	RelatedDocID   *string         `json:"related_doc_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// CashHead cabecera del libro: último saldo y última secuencia asignada.
// Es el único punto de serialización de las inserciones.
type CashHead struct {
	Balance   decimal.Decimal
	LastSeq   int64
	UpdatedAt time.Time
}

// CashSnapshot valores del libro leídos en un mismo instante para verificar su consistencia.
type CashSnapshot struct {
	LatestBalance decimal.Decimal // saldo del último movimiento; cero si el libro está vacío
	Sum           decimal.Decimal
	Entries       int
	Head          CashHead
}
