package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var (
	_ repository.FreezerTransferRepository = transferRepo{}
	_ repository.WorkerRepository          = workerRepo{}
	_ repository.RouteRepository           = routeRepo{}
	_ repository.WorkerPaymentRepository   = paymentRepo{}
	_ repository.AuditLogRepository        = auditRepo{}
)

// ── Traslados ────────────────────────────────────────────────────────────────

type transferRepo struct{ db }

func (r transferRepo) Create(_ context.Context, t *entity.FreezerTransfer) error {
	return r.do(func(st *state) error {
		st.transfers[t.ID] = ptrCopy(t)
		return nil
	})
}

func (r transferRepo) AddItem(_ context.Context, it *entity.TransferItem) error {
	return r.do(func(st *state) error {
		st.transferItems[it.TransferID] = append(st.transferItems[it.TransferID], ptrCopy(it))
		return nil
	})
}

func (r transferRepo) GetByID(_ context.Context, id string) (*entity.FreezerTransfer, error) {
	var out *entity.FreezerTransfer
	err := r.do(func(st *state) error {
		out = ptrCopy(st.transfers[id])
		return nil
	})
	return out, err
}

func (r transferRepo) ListItems(_ context.Context, transferID string) ([]*entity.TransferItem, error) {
	var out []*entity.TransferItem
	err := r.do(func(st *state) error {
		out = copyAll(st.transferItems[transferID])
		return nil
	})
	return out, err
}

func (r transferRepo) filter(keep func(*entity.FreezerTransfer) bool) []*entity.FreezerTransfer {
	var out []*entity.FreezerTransfer
	_ = r.do(func(st *state) error {
		for _, t := range st.transfers {
			if keep(t) {
				out = append(out, ptrCopy(t))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r transferRepo) List(_ context.Context, limit int) ([]*entity.FreezerTransfer, error) {
	out := r.filter(func(*entity.FreezerTransfer) bool { return true })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r transferRepo) ListByFreezer(_ context.Context, freezerID string) ([]*entity.FreezerTransfer, error) {
	return r.filter(func(t *entity.FreezerTransfer) bool {
		return t.FromFreezerID == freezerID || t.ToFreezerID == freezerID
	}), nil
}

// ── Trabajadores, rutas y pagos ──────────────────────────────────────────────

type workerRepo struct{ db }

func (r workerRepo) GetByID(_ context.Context, id string) (*entity.Worker, error) {
	var out *entity.Worker
	err := r.do(func(st *state) error {
		out = ptrCopy(st.workers[id])
		return nil
	})
	return out, err
}

func (r workerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Worker, error) {
	return r.GetByID(ctx, id)
}

func (r workerRepo) ApplySettlement(_ context.Context, workerID string, amountDue decimal.Decimal, sold int, at time.Time) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		cur := st.workers[workerID]
		if cur == nil {
			return nil
		}
		next := *cur
		next.CurrentDebt = next.CurrentDebt.Add(amountDue)
		next.TotalSales += sold
		next.LastSale = &at
		st.workers[workerID] = &next
		ok = true
		return nil
	})
	return ok, err
}

func (r workerRepo) SetAggregates(_ context.Context, w *entity.Worker) error {
	return r.do(func(st *state) error {
		cur := st.workers[w.ID]
		if cur == nil {
			return domain.NotFound("worker", w.ID)
		}
		next := *cur
		next.CurrentDebt = w.CurrentDebt
		next.TotalSales = w.TotalSales
		next.LastSale = w.LastSale
		st.workers[w.ID] = &next
		return nil
	})
}

type routeRepo struct{ db }

func (r routeRepo) IncrementUsage(_ context.Context, routeID string) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		cur := st.routes[routeID]
		if cur == nil {
			return nil
		}
		next := *cur
		next.UsageCount++
		st.routes[routeID] = &next
		ok = true
		return nil
	})
	return ok, err
}

type paymentRepo struct{ db }

func (r paymentRepo) Create(_ context.Context, p *entity.WorkerPayment) error {
	return r.do(func(st *state) error {
		for _, existing := range st.payments {
			if existing.TripID == p.TripID {
				return domain.Conflict("el viaje ya tiene un pago registrado")
			}
		}
		st.payments[p.ID] = ptrCopy(p)
		return nil
	})
}

func (r paymentRepo) GetByTrip(_ context.Context, tripID string) (*entity.WorkerPayment, error) {
	var out *entity.WorkerPayment
	err := r.do(func(st *state) error {
		for _, p := range st.payments {
			if p.TripID == tripID {
				out = ptrCopy(p)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r paymentRepo) ListByWorker(_ context.Context, workerID string) ([]*entity.WorkerPayment, error) {
	var out []*entity.WorkerPayment
	err := r.do(func(st *state) error {
		for _, p := range st.payments {
			if p.WorkerID == workerID {
				out = append(out, ptrCopy(p))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

// ── Auditoría ────────────────────────────────────────────────────────────────

type auditRepo struct{ db }

func (r auditRepo) Create(_ context.Context, e *entity.AuditEntry) error {
	return r.do(func(st *state) error {
		st.audit = append(st.audit, ptrCopy(e))
		return nil
	})
}

func (r auditRepo) ListByRecord(_ context.Context, tableName, recordID string) ([]*entity.AuditEntry, error) {
	var out []*entity.AuditEntry
	err := r.do(func(st *state) error {
		for _, e := range st.audit {
			if e.TableName == tableName && e.RecordID == recordID {
				out = append(out, ptrCopy(e))
			}
		}
		return nil
	})
	return out, err
}
