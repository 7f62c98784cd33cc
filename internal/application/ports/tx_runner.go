package ports

import (
	"context"

	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error (o el contexto se cancela) se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repos) error) error
}
