package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// WorkerRepository puerto de la proyección de trabajadores.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Worker, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Worker, error)
	// ApplySettlement suma deuda y ventas y fija la última venta. false si el trabajador no existe.
	ApplySettlement(ctx context.Context, workerID string, amountDue decimal.Decimal, sold int, at time.Time) (bool, error)
	// SetAggregates sobrescribe deuda, ventas y última venta.
	SetAggregates(ctx context.Context, w *entity.Worker) error
}

// RouteRepository puerto de rutas.
type RouteRepository interface {
	// IncrementUsage suma uno al contador. false si la ruta no existe.
	IncrementUsage(ctx context.Context, routeID string) (bool, error)
}

// WorkerPaymentRepository puerto de pagos de trabajadores.
type WorkerPaymentRepository interface {
	Create(ctx context.Context, p *entity.WorkerPayment) error
	GetByTrip(ctx context.Context, tripID string) (*entity.WorkerPayment, error)
	ListByWorker(ctx context.Context, workerID string) ([]*entity.WorkerPayment, error)
}
