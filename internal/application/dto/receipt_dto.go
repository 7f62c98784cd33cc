package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine línea agregada por producto y sabor en el comprobante.
type ReceiptLine struct {
	ProductID string
	FlavorID  string
	Loaded    int
	Returned  int
	Sold      int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// SettlementReceipt datos del comprobante de liquidación de un viaje o venta del dueño.
type SettlementReceipt struct {
	BusinessName  string
	Title         string
	DocumentID    string
	HolderLabel   string
	HolderID      string
	DepartureTime time.Time
	ReturnTime    time.Time
	Lines         []ReceiptLine
	SoldQuantity  int
	AmountDue     decimal.Decimal
}
