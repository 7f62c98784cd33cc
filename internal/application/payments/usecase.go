// Package payments registra el pago de un trabajador por un viaje liquidado.
package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// UseCase casos de uso de pagos.
//
// El ingreso en caja ya se registró al liquidar el viaje; el pago solo descuenta la deuda
// del trabajador y deja constancia (deuda anterior y nueva).
type UseCase struct {
	txRunner ports.TxRunner
	repo     repository.WorkerPaymentRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repo repository.WorkerPaymentRepository) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo}
}

// Create paga el viaje indicado. El viaje debe estar devuelto y no tener pago previo.
func (uc *UseCase) Create(ctx context.Context, tripID string, actor entity.Actor) (*entity.WorkerPayment, error) {
	if tripID == "" {
		return nil, domain.Invalid("trip_id es obligatorio")
	}
	var out *entity.WorkerPayment
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		trip, err := r.Trips.GetByID(ctx, tripID)
		if err != nil {
			return err
		}
		if trip == nil {
			return domain.NotFound("viaje", tripID)
		}
		if trip.Status != entity.TripReturned {
			return domain.Invalid("el viaje debe estar devuelto para registrar el pago")
		}
		existing, err := r.Payments.GetByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("ya existe un pago para este viaje")
		}
		worker, err := r.Workers.GetForUpdate(ctx, trip.WorkerID)
		if err != nil {
			return err
		}
		if worker == nil {
			return domain.NotFound("trabajador", trip.WorkerID)
		}

		p := &entity.WorkerPayment{
			ID:           uuid.New().String(),
			WorkerID:     worker.ID,
			TripID:       tripID,
			Amount:       trip.AmountDue,
			PreviousDebt: worker.CurrentDebt,
			NewDebt:      worker.CurrentDebt.Sub(trip.AmountDue),
			CreatedAt:    time.Now(),
			CreatedBy:    actor.ID,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		updated := *worker
		updated.CurrentDebt = p.NewDebt
		if err := r.Workers.SetAggregates(ctx, &updated); err != nil {
			return err
		}
		out = p
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditCreate, Table: audit.TablePayments, RecordID: p.ID, After: p,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByTrip pago de un viaje.
func (uc *UseCase) GetByTrip(ctx context.Context, tripID string) (*entity.WorkerPayment, error) {
	p, err := uc.repo.GetByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("pago para el viaje", tripID)
	}
	return p, nil
}

// ListByWorker pagos de un trabajador, más recientes primero.
func (uc *UseCase) ListByWorker(ctx context.Context, workerID string) ([]*entity.WorkerPayment, error) {
	return uc.repo.ListByWorker(ctx, workerID)
}
