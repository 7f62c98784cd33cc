package trips_test

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
	"github.com/jhoicas/helados-api/internal/application/trips"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/infrastructure/memory"
)

var admin = entity.Actor{ID: "admin-1", Role: entity.RoleAdmin}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func setup(t *testing.T) (*trips.UseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.SeedInventory(
		entity.InventoryItem{ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 50, MinStockAlert: 20},
		entity.InventoryItem{ID: "i2", FreezerID: "fz1", ProductID: "p2", FlavorID: "f1", ProviderID: "pr2", Quantity: 5, MinStockAlert: 20},
	)
	store.SeedWorker(entity.Worker{ID: "w1", Name: "Juan"})
	store.SeedRoute(entity.Route{ID: "r1", Name: "Centro"})
	uc := trips.NewUseCase(store, store.Repos(), inventory.NewLedger(20), cash.NewLedger())
	return uc, store
}

func quantity(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	it, err := store.Repos().Inventory.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it, "pila %s", id)
	return it.Quantity
}

func loadTen(t *testing.T, uc *trips.UseCase) *entity.WorkerTrip {
	t.Helper()
	trip, err := uc.Create(context.Background(), dto.CreateTripRequest{
		WorkerID: "w1",
		RouteID:  strPtr("r1"),
		LoadedItems: []dto.LoadedItemRequest{
			{InventoryID: "i1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 10, UnitPrice: dec("2.00")},
		},
	}, admin)
	require.NoError(t, err)
	return trip
}

func TestCreate_RestaInventario(t *testing.T) {
	uc, store := setup(t)

	trip := loadTen(t, uc)

	assert.Equal(t, entity.TripInProgress, trip.Status)
	assert.False(t, trip.DepartureTime.IsZero())
	assert.Equal(t, 40, quantity(t, store, "i1"))

	active, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, trip.ID, active[0].ID)
}

func TestCreate_StockInsuficienteNoDejaRastro(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	_, err := uc.Create(ctx, dto.CreateTripRequest{
		WorkerID: "w1",
		LoadedItems: []dto.LoadedItemRequest{
			{InventoryID: "i1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 10, UnitPrice: dec("2")},
			{InventoryID: "i2", ProductID: "p2", FlavorID: "f1", FreezerID: "fz1", Quantity: 6, UnitPrice: dec("3")},
		},
	}, admin)
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "i2", stockErr.InventoryID)

	assert.Equal(t, 50, quantity(t, store, "i1"), "la primera línea debe revertirse")
	assert.Equal(t, 5, quantity(t, store, "i2"))

	active, err := uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	_, err := uc.Create(ctx, dto.CreateTripRequest{WorkerID: "w1"}, admin)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin líneas")

	_, err = uc.Create(ctx, dto.CreateTripRequest{
		LoadedItems: []dto.LoadedItemRequest{{InventoryID: "i1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 1}},
	}, admin)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin trabajador")

	_, err = uc.Create(ctx, dto.CreateTripRequest{
		WorkerID: "w1",
		RouteID:  strPtr("no-existe"),
		LoadedItems: []dto.LoadedItemRequest{
			{InventoryID: "i1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 1, UnitPrice: dec("2")},
		},
	}, admin)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "ruta inexistente")
	assert.Equal(t, 50, quantity(t, store, "i1"))
}

func TestComplete_LiquidaYRegistraCaja(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	trip := loadTen(t, uc)

	done, err := uc.Complete(ctx, trip.ID, dto.CompleteRequest{ReturnedItems: []dto.ReturnedItemRequest{
		{ProductID: "p1", FlavorID: "f1", Quantity: 2, DestinationFreezerID: "fz1"},
		{ProductID: "p1", FlavorID: "f1", Quantity: 1, IsDeformed: true, DestinationFreezerID: "fz1"},
	}}, admin)
	require.NoError(t, err)

	assert.Equal(t, entity.TripReturned, done.Status)
	require.NotNil(t, done.ReturnTime)
	assert.Equal(t, 7, done.SoldQuantity)
	assert.True(t, done.AmountDue.Equal(dec("14")), "adeudado: %s", done.AmountDue)

	// 40 + 2 buenas vuelven a la pila original; la deforme va a una pila del trabajador.
	assert.Equal(t, 42, quantity(t, store, "i1"))
	deformed, err := store.Repos().Inventory.ListWorkerDeformed(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, deformed, 1)
	assert.Equal(t, 1, deformed[0].Quantity)
	assert.Equal(t, 0, deformed[0].MinStockAlert)
	assert.Equal(t, "pr1", deformed[0].ProviderID)

	w, err := store.Repos().Workers.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.CurrentDebt.Equal(dec("14")))
	assert.Equal(t, 7, w.TotalSales)
	require.NotNil(t, w.LastSale)

	entries, err := store.Repos().Cash.ListByDocument(ctx, "worker_trips", trip.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.CashWorkerTrip, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(dec("14")))
	assert.True(t, entries[0].Balance.Equal(dec("14")))

	full, err := uc.Get(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, full.LoadedItems, 1)
	assert.Len(t, full.ReturnedItems, 2)

	today, err := uc.TodaysReturned(ctx)
	require.NoError(t, err)
	assert.Len(t, today, 1)
}

func TestComplete_SinDevolucionesSeVendeTodo(t *testing.T) {
	uc, _ := setup(t)
	trip := loadTen(t, uc)

	done, err := uc.Complete(context.Background(), trip.ID, dto.CompleteRequest{}, admin)
	require.NoError(t, err)
	assert.Equal(t, 10, done.SoldQuantity)
	assert.True(t, done.AmountDue.Equal(dec("20")))
}

func TestComplete_DosVecesDevuelveNotFound(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	trip := loadTen(t, uc)

	_, err := uc.Complete(ctx, trip.ID, dto.CompleteRequest{}, admin)
	require.NoError(t, err)

	_, err = uc.Complete(ctx, trip.ID, dto.CompleteRequest{ReturnedItems: []dto.ReturnedItemRequest{
		{ProductID: "p1", FlavorID: "f1", Quantity: 5, DestinationFreezerID: "fz1"},
	}}, admin)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, 40, quantity(t, store, "i1"), "el segundo cierre no reingresa nada")
	w, err := store.Repos().Workers.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.CurrentDebt.Equal(dec("20")))
	_, n, err := store.Repos().Cash.SumAmounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestComplete_ProveedorDeRespaldo(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	// La pila cargada es deforme y se agota: al devolver hay que buscar el proveedor en otra pila.
	store.SeedInventory(entity.InventoryItem{
		ID: "d1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1",
		Quantity: 2, IsDeformed: true, AssignedWorkerID: strPtr("w9"),
	})
	trip, err := uc.Create(ctx, dto.CreateTripRequest{
		WorkerID: "w1",
		LoadedItems: []dto.LoadedItemRequest{
			{InventoryID: "d1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 2, UnitPrice: dec("1"), IsDeformed: true},
		},
	}, admin)
	require.NoError(t, err)
	gone, err := store.Repos().Inventory.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, gone, "la pila deforme agotada se elimina")

	_, err = uc.Complete(ctx, trip.ID, dto.CompleteRequest{ReturnedItems: []dto.ReturnedItemRequest{
		{ProductID: "p1", FlavorID: "f1", Quantity: 1, DestinationFreezerID: "fz2"},
	}}, admin)
	require.NoError(t, err)

	piles, err := store.Repos().Inventory.ListByFreezer(ctx, "fz2")
	require.NoError(t, err)
	require.Len(t, piles, 1)
	assert.Equal(t, "pr1", piles[0].ProviderID)
	assert.Equal(t, 20, piles[0].MinStockAlert)
}

func TestCreate_TrabajadorInexistente(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	_, err := uc.Create(ctx, dto.CreateTripRequest{
		WorkerID: "fantasma",
		LoadedItems: []dto.LoadedItemRequest{
			{InventoryID: "i1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 4, UnitPrice: dec("2")},
		},
	}, admin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "fantasma", nf.ID)

	assert.Equal(t, 50, quantity(t, store, "i1"), "no se resta stock para un trabajador inexistente")
	active, err := uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestListByWorker(t *testing.T) {
	uc, _ := setup(t)
	loadTen(t, uc)
	loadTen(t, uc)

	list, err := uc.ListByWorker(context.Background(), "w1", 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = uc.ListByWorker(context.Background(), "otro", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
