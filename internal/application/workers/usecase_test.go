package workers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/helados-api/internal/application/cash"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/payments"
	"github.com/jhoicas/helados-api/internal/application/trips"
	"github.com/jhoicas/helados-api/internal/application/workers"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/infrastructure/memory"
)

var owner = entity.Actor{ID: "owner-1", Role: entity.RoleOwner}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// settledTrip crea y liquida un viaje de w1 con qty unidades a $2 sin devoluciones.
func settledTrip(t *testing.T, uc *trips.UseCase, qty int) *entity.WorkerTrip {
	t.Helper()
	ctx := context.Background()
	trip, err := uc.Create(ctx, dto.CreateTripRequest{
		WorkerID: "w1",
		LoadedItems: []dto.LoadedItemRequest{
			{InventoryID: "i1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: qty, UnitPrice: dec("2")},
		},
	}, owner)
	require.NoError(t, err)
	trip, err = uc.Complete(ctx, trip.ID, dto.CompleteRequest{}, owner)
	require.NoError(t, err)
	return trip
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	store.SeedInventory(entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 100,
	})
	store.SeedWorker(entity.Worker{ID: "w1", Name: "Luis"})

	tripsUC := trips.NewUseCase(store, store.Repos(), inventory.NewLedger(20), cash.NewLedger())
	paymentsUC := payments.NewUseCase(store, store.Repos().Payments)
	uc := workers.NewUseCase(store, store.Repos())

	first := settledTrip(t, tripsUC, 5)
	settledTrip(t, tripsUC, 3)
	_, err := paymentsUC.Create(ctx, first.ID, owner)
	require.NoError(t, err)

	rec, err := uc.Reconcile(ctx, "w1", false, owner)
	require.NoError(t, err)
	assert.False(t, rec.HasDrift, "los agregados incrementales deben coincidir con el recálculo")
	assert.True(t, rec.CurrentDebt.Equal(dec("6")))
	assert.Equal(t, 8, rec.TotalSales)
	require.NotNil(t, rec.LastSale)

	// Se corrompe la proyección a mano y se repara.
	broken := *rec.Stored
	broken.CurrentDebt = dec("999")
	broken.TotalSales = 1
	require.NoError(t, store.Repos().Workers.SetAggregates(ctx, &broken))

	rec, err = uc.Reconcile(ctx, "w1", false, owner)
	require.NoError(t, err)
	assert.True(t, rec.HasDrift)
	assert.False(t, rec.Applied)

	rec, err = uc.Reconcile(ctx, "w1", true, owner)
	require.NoError(t, err)
	assert.True(t, rec.Applied)

	w, err := uc.Get(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.CurrentDebt.Equal(dec("6")))
	assert.Equal(t, 8, w.TotalSales)

	trail, err := store.Repos().Audit.ListByRecord(ctx, "workers", "w1")
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestGet_Inexistente(t *testing.T) {
	store := memory.New()
	uc := workers.NewUseCase(store, store.Repos())

	_, err := uc.Get(context.Background(), "nadie")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Reconcile(context.Background(), "nadie", true, owner)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
