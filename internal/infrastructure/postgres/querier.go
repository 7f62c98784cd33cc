package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx: los repositorios funcionan igual dentro o fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewRepos construye el conjunto de repositorios sobre q (pool o tx).
func NewRepos(q Querier) repository.Repos {
	q = inputGuard{q: q}
	return repository.Repos{
		Inventory:  NewInventoryRepository(q),
		Cash:       NewCashRegisterRepository(q),
		Trips:      NewWorkerTripRepository(q),
		OwnerSales: NewOwnerSaleRepository(q),
		Transfers:  NewFreezerTransferRepository(q),
		LocalSales: NewLocalSaleRepository(q),
		Purchases:  NewPurchaseRepository(q),
		Workers:    NewWorkerRepository(q),
		Routes:     NewRouteRepository(q),
		Payments:   NewWorkerPaymentRepository(q),
		Audit:      NewAuditLogRepository(q),
	}
}
