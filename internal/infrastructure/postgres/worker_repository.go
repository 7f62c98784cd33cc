package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var (
	_ repository.WorkerRepository        = (*WorkerRepo)(nil)
	_ repository.RouteRepository         = (*RouteRepo)(nil)
	_ repository.WorkerPaymentRepository = (*WorkerPaymentRepo)(nil)
)

const workerColumns = `id, name, current_debt, total_sales, last_sale`

// WorkerRepo proyección de trabajadores sobre PostgreSQL.
type WorkerRepo struct {
	q Querier
}

func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

func (r *WorkerRepo) get(ctx context.Context, query, id string) (*entity.Worker, error) {
	var w entity.Worker
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.CurrentDebt, &w.TotalSales, &w.LastSale)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return &w, nil
}

func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	return r.get(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id)
}

func (r *WorkerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Worker, error) {
	return r.get(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1 FOR UPDATE`, id)
}

// ApplySettlement actualización relativa en una sola sentencia: no pierde liquidaciones concurrentes.
func (r *WorkerRepo) ApplySettlement(ctx context.Context, workerID string, amountDue decimal.Decimal, sold int, at time.Time) (bool, error) {
	query := `
		UPDATE workers
		SET current_debt = current_debt + $1, total_sales = total_sales + $2, last_sale = $3
		WHERE id = $4`
	tag, err := r.q.Exec(ctx, query, amountDue, sold, at, workerID)
	if err != nil {
		return false, fmt.Errorf("apply worker settlement: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *WorkerRepo) SetAggregates(ctx context.Context, w *entity.Worker) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE workers SET current_debt = $1, total_sales = $2, last_sale = $3 WHERE id = $4`,
		w.CurrentDebt, w.TotalSales, w.LastSale, w.ID,
	)
	if err != nil {
		return fmt.Errorf("set worker aggregates: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return domain.NotFound("worker", w.ID)
	}
	return nil
}

// RouteRepo rutas sobre PostgreSQL.
type RouteRepo struct {
	q Querier
}

func NewRouteRepository(q Querier) *RouteRepo {
	return &RouteRepo{q: q}
}

func (r *RouteRepo) IncrementUsage(ctx context.Context, routeID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE routes SET usage_count = usage_count + 1 WHERE id = $1`, routeID)
	if err != nil {
		return false, fmt.Errorf("increment route usage: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

const paymentColumns = `id, worker_id, trip_id, amount, previous_debt, new_debt, created_at, created_by`

// WorkerPaymentRepo pagos de trabajadores sobre PostgreSQL.
type WorkerPaymentRepo struct {
	q Querier
}

func NewWorkerPaymentRepository(q Querier) *WorkerPaymentRepo {
	return &WorkerPaymentRepo{q: q}
}

func scanPayment(row pgx.Row) (*entity.WorkerPayment, error) {
	var p entity.WorkerPayment
	err := row.Scan(&p.ID, &p.WorkerID, &p.TripID, &p.Amount, &p.PreviousDebt, &p.NewDebt, &p.CreatedAt, &p.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta el pago; el índice único por trip_id se traduce a conflicto de dominio.
func (r *WorkerPaymentRepo) Create(ctx context.Context, p *entity.WorkerPayment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO worker_payments (`+paymentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.WorkerID, p.TripID, p.Amount, p.PreviousDebt, p.NewDebt, p.CreatedAt, p.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("el viaje ya tiene un pago registrado")
		}
		return fmt.Errorf("insert worker payment: %w", err)
	}
	return nil
}

func (r *WorkerPaymentRepo) GetByTrip(ctx context.Context, tripID string) (*entity.WorkerPayment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM worker_payments WHERE trip_id = $1`, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker payment: %w", err)
	}
	return p, nil
}

func (r *WorkerPaymentRepo) ListByWorker(ctx context.Context, workerID string) ([]*entity.WorkerPayment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM worker_payments
		WHERE worker_id = $1 ORDER BY created_at DESC, id`, workerID)
	if err != nil {
		return nil, fmt.Errorf("list worker payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkerPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan worker payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
