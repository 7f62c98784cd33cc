// Package trips gestiona el ciclo de vida de los viajes de venta de los trabajadores:
// carga (resta de inventario), cierre con devoluciones y liquidación.
package trips

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/cash"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/lifecycle"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

const defaultListLimit = 50

// UseCase casos de uso de viajes.
type UseCase struct {
	txRunner  ports.TxRunner
	repos     repository.Repos
	inventory *inventory.Ledger
	cash      *cash.Ledger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. repos (sin tx) se usa solo para lecturas.
func NewUseCase(txRunner ports.TxRunner, repos repository.Repos, inv *inventory.Ledger, cashLedger *cash.Ledger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, inventory: inv, cash: cashLedger, now: time.Now}
}

// Create registra la salida de un trabajador: crea el viaje, incrementa el uso de la ruta
// y resta cada línea cargada de su pila. Si alguna pila no alcanza, nada queda registrado.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateTripRequest, actor entity.Actor) (*entity.WorkerTrip, error) {
	if in.WorkerID == "" {
		return nil, domain.Invalid("worker_id es obligatorio")
	}
	if err := lifecycle.ValidateLoaded(in.LoadedItems); err != nil {
		return nil, err
	}
	departure := in.DepartureTime
	if departure.IsZero() {
		departure = uc.now()
	}
	trip := &entity.WorkerTrip{
		ID:            uuid.New().String(),
		WorkerID:      in.WorkerID,
		DepartureTime: departure,
		RouteID:       in.RouteID,
		Status:        entity.TripInProgress,
		CreatedAt:     uc.now(),
		CreatedBy:     actor.ID,
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		w, err := r.Workers.GetByID(ctx, trip.WorkerID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.NotFound("trabajador", trip.WorkerID)
		}
		if err := r.Trips.Create(ctx, trip); err != nil {
			return err
		}
		if trip.RouteID != nil {
			ok, err := r.Routes.IncrementUsage(ctx, *trip.RouteID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.NotFound("ruta", *trip.RouteID)
			}
		}
		for _, li := range in.LoadedItems {
			item := lifecycle.NewLoadedItem(trip.ID, li)
			if err := r.Trips.AddLoadedItem(ctx, item); err != nil {
				return err
			}
			if err := uc.inventory.Subtract(ctx, r.Inventory, item.InventoryID, item.Quantity, actor); err != nil {
				return err
			}
		}
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditCreate, Table: audit.TableWorkerTrips, RecordID: trip.ID, After: trip,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// Complete cierra un viaje en curso: reingresa las devoluciones, calcula lo vendido y lo
// adeudado, actualiza los agregados del trabajador y registra el ingreso en caja.
// Un viaje ya cerrado (o inexistente) devuelve NotFound sin tocar nada.
func (uc *UseCase) Complete(ctx context.Context, tripID string, in dto.CompleteRequest, actor entity.Actor) (*entity.WorkerTrip, error) {
	if tripID == "" {
		return nil, domain.Invalid("trip_id es obligatorio")
	}
	if err := lifecycle.ValidateReturned(in.ReturnedItems); err != nil {
		return nil, err
	}

	var out *entity.WorkerTrip
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		before, err := r.Trips.GetInProgressForUpdate(ctx, tripID)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.NotFound("viaje en curso", tripID)
		}
		loaded, err := r.Trips.ListLoadedItems(ctx, tripID)
		if err != nil {
			return err
		}
		for _, ri := range in.ReturnedItems {
			if err := r.Trips.AddReturnedItem(ctx, lifecycle.NewReturnedItem(tripID, ri)); err != nil {
				return err
			}
		}
		if err := uc.inventory.Restock(ctx, r.Inventory, loaded, lifecycle.ReturnLines(in.ReturnedItems), before.WorkerID, actor); err != nil {
			return err
		}

		res := lifecycle.Settle("trip_id", tripID, loaded, in.ReturnedItems)
		returnTime := uc.now()
		after := *before
		after.ReturnTime = &returnTime
		after.Status = entity.TripReturned
		after.SoldQuantity = res.SoldQuantity
		after.AmountDue = res.AmountDue

		ok, err := r.Trips.Settle(ctx, &after)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound("viaje en curso", tripID)
		}
		ok, err = r.Workers.ApplySettlement(ctx, after.WorkerID, after.AmountDue, after.SoldQuantity, returnTime)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound("trabajador", after.WorkerID)
		}

		docType, docID := cash.DocRef(audit.TableWorkerTrips, tripID)
		desc := "Liquidación de viaje"
		if _, err := uc.cash.Append(ctx, r.Cash, cash.AppendInput{
			Type:           entity.CashWorkerTrip,
			Amount:         after.AmountDue,
			Description:    &desc,
			RelatedDocType: docType,
			RelatedDocID:   docID,
		}, actor); err != nil {
			return err
		}

		out = &after
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditUpdate, Table: audit.TableWorkerTrips, RecordID: tripID,
			Before: before, After: after,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get devuelve el viaje con sus líneas cargadas y devueltas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.TripWithItems, error) {
	trip, err := uc.repos.Trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, domain.NotFound("viaje", id)
	}
	loaded, err := uc.repos.Trips.ListLoadedItems(ctx, id)
	if err != nil {
		return nil, err
	}
	returned, err := uc.repos.Trips.ListReturnedItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TripWithItems{Trip: trip, LoadedItems: loaded, ReturnedItems: returned}, nil
}

// ListActive viajes en curso.
func (uc *UseCase) ListActive(ctx context.Context) ([]*entity.WorkerTrip, error) {
	return uc.repos.Trips.ListActive(ctx)
}

// ListByWorker últimos viajes de un trabajador.
func (uc *UseCase) ListByWorker(ctx context.Context, workerID string, limit int) ([]*entity.WorkerTrip, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	return uc.repos.Trips.ListByWorker(ctx, workerID, limit)
}

// TodaysReturned viajes cerrados hoy.
func (uc *UseCase) TodaysReturned(ctx context.Context) ([]*entity.WorkerTrip, error) {
	y, m, d := uc.now().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return uc.repos.Trips.ListReturnedBetween(ctx, from, from.AddDate(0, 0, 1))
}
