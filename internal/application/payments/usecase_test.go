package payments_test

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
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/infrastructure/memory"
)

var owner = entity.Actor{ID: "owner-1", Role: entity.RoleOwner}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memory.Store
	trips    *trips.UseCase
	payments *payments.UseCase
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	store.SeedInventory(entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 100,
	})
	store.SeedWorker(entity.Worker{ID: "w1", Name: "Ana", CurrentDebt: dec("5")})
	return fixture{
		store:    store,
		trips:    trips.NewUseCase(store, store.Repos(), inventory.NewLedger(20), cash.NewLedger()),
		payments: payments.NewUseCase(store, store.Repos().Payments),
	}
}

func (f fixture) trip(t *testing.T, complete bool) *entity.WorkerTrip {
	t.Helper()
	ctx := context.Background()
	trip, err := f.trips.Create(ctx, dto.CreateTripRequest{
		WorkerID: "w1",
		LoadedItems: []dto.LoadedItemRequest{
			{InventoryID: "i1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 6, UnitPrice: dec("3")},
		},
	}, owner)
	require.NoError(t, err)
	if complete {
		trip, err = f.trips.Complete(ctx, trip.ID, dto.CompleteRequest{}, owner)
		require.NoError(t, err)
	}
	return trip
}

func TestCreate_DescuentaDeuda(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	trip := f.trip(t, true)

	p, err := f.payments.Create(ctx, trip.ID, owner)
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(dec("18")))
	assert.True(t, p.PreviousDebt.Equal(dec("23")))
	assert.True(t, p.NewDebt.Equal(dec("5")))

	w, err := f.store.Repos().Workers.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.CurrentDebt.Equal(dec("5")))

	// El pago no mueve caja: el ingreso se registró al liquidar.
	_, n, err := f.store.Repos().Cash.SumAmounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.payments.GetByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	list, err := f.payments.ListByWorker(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_PagoDuplicado(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	trip := f.trip(t, true)

	_, err := f.payments.Create(ctx, trip.ID, owner)
	require.NoError(t, err)

	_, err = f.payments.Create(ctx, trip.ID, owner)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	w, err := f.store.Repos().Workers.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.CurrentDebt.Equal(dec("5")), "la deuda se descuenta una sola vez")
}

func TestCreate_ViajeEnCurso(t *testing.T) {
	f := setup(t)
	trip := f.trip(t, false)

	_, err := f.payments.Create(context.Background(), trip.ID, owner)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreate_ViajeInexistente(t *testing.T) {
	f := setup(t)

	_, err := f.payments.Create(context.Background(), "no-existe", owner)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.payments.GetByTrip(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
