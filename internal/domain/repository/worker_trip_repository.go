package repository

import (
	"context"
	"time"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// WorkerTripRepository puerto de viajes y sus líneas.
type WorkerTripRepository interface {
	Create(ctx context.Context, trip *entity.WorkerTrip) error
	AddLoadedItem(ctx context.Context, item *entity.LoadedItem) error
	AddReturnedItem(ctx context.Context, item *entity.ReturnedItem) error
	GetByID(ctx context.Context, id string) (*entity.WorkerTrip, error)
	// GetInProgressForUpdate devuelve el viaje solo si sigue en curso y bloquea la fila.
	GetInProgressForUpdate(ctx context.Context, id string) (*entity.WorkerTrip, error)
	ListLoadedItems(ctx context.Context, tripID string) ([]*entity.LoadedItem, error)
	ListReturnedItems(ctx context.Context, tripID string) ([]*entity.ReturnedItem, error)
	// Settle marca el viaje como devuelto si seguía en curso; false si ya no lo estaba.
	Settle(ctx context.Context, trip *entity.WorkerTrip) (bool, error)
	ListActive(ctx context.Context) ([]*entity.WorkerTrip, error)
	ListByWorker(ctx context.Context, workerID string, limit int) ([]*entity.WorkerTrip, error)
	ListReturnedBetween(ctx context.Context, from, to time.Time) ([]*entity.WorkerTrip, error)
	// ListSettledByWorker todos los viajes devueltos del trabajador (para reconciliar agregados).
	ListSettledByWorker(ctx context.Context, workerID string) ([]*entity.WorkerTrip, error)
}
