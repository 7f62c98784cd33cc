// Package workers expone la proyección de agregados del trabajador y su reconciliación.
package workers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// UseCase casos de uso de trabajadores.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repos
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repos repository.Repos) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos}
}

// Get devuelve los agregados guardados del trabajador.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Worker, error) {
	w, err := uc.repos.Workers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NotFound("trabajador", id)
	}
	return w, nil
}

// Reconcile recalcula deuda, ventas y última venta desde los viajes devueltos y los pagos.
// Con apply=true guarda los valores recalculados si difieren de los guardados.
func (uc *UseCase) Reconcile(ctx context.Context, id string, apply bool, actor entity.Actor) (*dto.WorkerReconciliation, error) {
	var out *dto.WorkerReconciliation
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		w, err := r.Workers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.NotFound("trabajador", id)
		}
		trips, err := r.Trips.ListSettledByWorker(ctx, id)
		if err != nil {
			return err
		}
		payments, err := r.Payments.ListByWorker(ctx, id)
		if err != nil {
			return err
		}

		rec := &dto.WorkerReconciliation{Stored: w, CurrentDebt: decimal.Zero}
		for _, t := range trips {
			rec.CurrentDebt = rec.CurrentDebt.Add(t.AmountDue)
			rec.TotalSales += t.SoldQuantity
			if t.ReturnTime != nil && (rec.LastSale == nil || t.ReturnTime.After(*rec.LastSale)) {
				rt := *t.ReturnTime
				rec.LastSale = &rt
			}
		}
		for _, p := range payments {
			rec.CurrentDebt = rec.CurrentDebt.Sub(p.Amount)
		}
		rec.HasDrift = !rec.CurrentDebt.Equal(w.CurrentDebt) || rec.TotalSales != w.TotalSales || !sameTime(rec.LastSale, w.LastSale)
		out = rec
		if !apply || !rec.HasDrift {
			return nil
		}

		fixed := *w
		fixed.CurrentDebt = rec.CurrentDebt
		fixed.TotalSales = rec.TotalSales
		fixed.LastSale = rec.LastSale
		if err := r.Workers.SetAggregates(ctx, &fixed); err != nil {
			return err
		}
		rec.Applied = true
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditUpdate, Table: audit.TableWorkers, RecordID: id,
			Before: w, After: fixed,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
