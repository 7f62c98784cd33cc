package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// CashRegisterRepository puerto del libro de caja (solo inserción).
type CashRegisterRepository interface {
	// LockHead bloquea la cabecera del libro hasta el fin de la transacción y la devuelve.
	LockHead(ctx context.Context) (*entity.CashHead, error)
	// Insert guarda el movimiento y avanza la cabecera a su Seq y Balance.
	Insert(ctx context.Context, e *entity.CashEntry) error
	// Snapshot último saldo, suma, cantidad y cabecera tomados de una sola lectura consistente.
	Snapshot(ctx context.Context) (*entity.CashSnapshot, error)
	SumAmounts(ctx context.Context) (decimal.Decimal, int, error)
	Head(ctx context.Context) (*entity.CashHead, error)
	// ListBetween devuelve los movimientos con from <= created_at < to, ordenados por Seq.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.CashEntry, error)
	ListByDocument(ctx context.Context, docType, docID string) ([]*entity.CashEntry, error)
}
