package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ repository.WorkerTripRepository = (*WorkerTripRepo)(nil)

const tripColumns = `id, worker_id, departure_time, return_time, route_id, status,
	sold_quantity, amount_due, created_at, created_by`

// WorkerTripRepo viajes de trabajadores sobre PostgreSQL.
type WorkerTripRepo struct {
	q Querier
}

func NewWorkerTripRepository(q Querier) *WorkerTripRepo {
	return &WorkerTripRepo{q: q}
}

func scanTrip(row pgx.Row) (*entity.WorkerTrip, error) {
	var t entity.WorkerTrip
	err := row.Scan(
		&t.ID, &t.WorkerID, &t.DepartureTime, &t.ReturnTime, &t.RouteID, &t.Status,
		&t.SoldQuantity, &t.AmountDue, &t.CreatedAt, &t.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *WorkerTripRepo) Create(ctx context.Context, t *entity.WorkerTrip) error {
	query := `INSERT INTO worker_trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.WorkerID, t.DepartureTime, t.ReturnTime, t.RouteID, t.Status,
		t.SoldQuantity, t.AmountDue, t.CreatedAt, t.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert worker trip: %w", err)
	}
	return nil
}

func (r *WorkerTripRepo) AddLoadedItem(ctx context.Context, it *entity.LoadedItem) error {
	return tripLines.addLoaded(ctx, r.q, it)
}

func (r *WorkerTripRepo) AddReturnedItem(ctx context.Context, it *entity.ReturnedItem) error {
	return tripLines.addReturned(ctx, r.q, it)
}

func (r *WorkerTripRepo) get(ctx context.Context, query string, id string) (*entity.WorkerTrip, error) {
	t, err := scanTrip(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker trip: %w", err)
	}
	return t, nil
}

// GetByID devuelve nil, nil si no existe.
func (r *WorkerTripRepo) GetByID(ctx context.Context, id string) (*entity.WorkerTrip, error) {
	return r.get(ctx, `SELECT `+tripColumns+` FROM worker_trips WHERE id = $1`, id)
}

// GetInProgressForUpdate bloquea la fila; una segunda liquidación concurrente espera y luego no la encuentra.
func (r *WorkerTripRepo) GetInProgressForUpdate(ctx context.Context, id string) (*entity.WorkerTrip, error) {
	return r.get(ctx, `SELECT `+tripColumns+` FROM worker_trips
		WHERE id = $1 AND status = 'in_progress' FOR UPDATE`, id)
}

func (r *WorkerTripRepo) ListLoadedItems(ctx context.Context, tripID string) ([]*entity.LoadedItem, error) {
	return tripLines.listLoaded(ctx, r.q, tripID)
}

func (r *WorkerTripRepo) ListReturnedItems(ctx context.Context, tripID string) ([]*entity.ReturnedItem, error) {
	return tripLines.listReturned(ctx, r.q, tripID)
}

func (r *WorkerTripRepo) Settle(ctx context.Context, t *entity.WorkerTrip) (bool, error) {
	query := `
		UPDATE worker_trips
		SET status = $1, return_time = $2, sold_quantity = $3, amount_due = $4
		WHERE id = $5 AND status = 'in_progress'`
	tag, err := r.q.Exec(ctx, query, t.Status, t.ReturnTime, t.SoldQuantity, t.AmountDue, t.ID)
	if err != nil {
		return false, fmt.Errorf("settle worker trip: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *WorkerTripRepo) list(ctx context.Context, where string, args ...any) ([]*entity.WorkerTrip, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tripColumns+` FROM worker_trips `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list worker trips: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkerTrip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan worker trip: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *WorkerTripRepo) ListActive(ctx context.Context) ([]*entity.WorkerTrip, error) {
	return r.list(ctx, `WHERE status = 'in_progress' ORDER BY departure_time DESC, id`)
}

func (r *WorkerTripRepo) ListByWorker(ctx context.Context, workerID string, limit int) ([]*entity.WorkerTrip, error) {
	return r.list(ctx, `WHERE worker_id = $1 ORDER BY departure_time DESC, id LIMIT $2`, workerID, limit)
}

func (r *WorkerTripRepo) ListReturnedBetween(ctx context.Context, from, to time.Time) ([]*entity.WorkerTrip, error) {
	return r.list(ctx, `WHERE status = 'returned' AND return_time >= $1 AND return_time < $2
		ORDER BY return_time DESC, id`, from, to)
}

func (r *WorkerTripRepo) ListSettledByWorker(ctx context.Context, workerID string) ([]*entity.WorkerTrip, error) {
	return r.list(ctx, `WHERE worker_id = $1 AND status = 'returned' ORDER BY departure_time DESC, id`, workerID)
}
