// Package cash implementa el libro de caja: movimientos con signo y saldo acumulado.
package cash

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// AppendInput movimiento a insertar. Amount con signo.
type AppendInput struct {
	Type           string
	Amount         decimal.Decimal
	Description    *string
	Category       *string
	RelatedDocType *string
	RelatedDocID   *string
}

// Ledger inserta movimientos dentro de la transacción del llamador.
// La cabecera del libro queda bloqueada hasta el Commit, por lo que dos inserciones
// concurrentes nunca parten del mismo saldo.
type Ledger struct{}

// NewLedger construye el ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Append bloquea la cabecera, calcula el nuevo saldo e inserta el movimiento.
func (l *Ledger) Append(ctx context.Context, repo repository.CashRegisterRepository, in AppendInput, actor entity.Actor) (*entity.CashEntry, error) {
	head, err := repo.LockHead(ctx)
	if err != nil {
		return nil, fmt.Errorf("bloquear cabecera de caja: %w", err)
	}
	e := &entity.CashEntry{
		ID:             uuid.New().String(),
		Seq:            head.LastSeq + 1,
		Type:           in.Type,
		Amount:         in.Amount,
		Balance:        head.Balance.Add(in.Amount),
		Description:    in.Description,
		Category:       in.Category,
		RelatedDocType: in.RelatedDocType,
		RelatedDocID:   in.RelatedDocID,
		CreatedAt:      time.Now(),
		CreatedBy:      actor.ID,
	}
	if err := repo.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("insertar movimiento de caja: %w", err)
	}
	return e, nil
}

// DocRef referencia a un documento relacionado (tipo, id).
func DocRef(docType, docID string) (*string, *string) {
	return &docType, &docID
}
