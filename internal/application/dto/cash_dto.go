package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// CashEntryRequest body para POST /api/cash/entries. Amount con signo.
type CashEntryRequest struct {
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    *string         `json:"description,omitempty"`
	Category       *string         `json:"category,omitempty"`
	RelatedDocType *string         `json:"related_doc_type,omitempty"`
	RelatedDocID   *string         `json:"related_doc_id,omitempty"`
}

// ExpenseRequest body para POST /api/cash/expenses. Amount positivo; se guarda negativo.
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
}

// WithdrawalRequest body para POST /api/cash/withdrawals. Amount positivo; se guarda negativo.
type WithdrawalRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

// BalanceInfo saldo actual y verificación del libro.
// IsConsistent compara la suma de todos los montos con el saldo del último movimiento y de la cabecera.
type BalanceInfo struct {
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	HeadBalance       decimal.Decimal `json:"head_balance"`
	Entries           int             `json:"entries"`
	IsConsistent      bool            `json:"is_consistent"`
}

// CashReport listado de movimientos con totales.
type CashReport struct {
	Entries []*entity.CashEntry `json:"entries"`
	Income  decimal.Decimal     `json:"income"`
	Outflow decimal.Decimal     `json:"outflow"`
	Net     decimal.Decimal     `json:"net"`
}
