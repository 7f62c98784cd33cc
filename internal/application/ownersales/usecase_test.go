package ownersales_test

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
	"github.com/jhoicas/helados-api/internal/application/ownersales"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/infrastructure/memory"
)

var owner = entity.Actor{ID: "owner-1", Role: entity.RoleOwner}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*ownersales.UseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.SeedInventory(entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 30, MinStockAlert: 20,
	})
	return ownersales.NewUseCase(store, store.Repos(), inventory.NewLedger(20), cash.NewLedger()), store
}

func create(t *testing.T, uc *ownersales.UseCase) *entity.OwnerSale {
	t.Helper()
	sale, err := uc.Create(context.Background(), dto.CreateOwnerSaleRequest{
		LoadedItems: []dto.LoadedItemRequest{
			{InventoryID: "i1", ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 8, UnitPrice: dec("2.5")},
		},
	}, owner)
	require.NoError(t, err)
	return sale
}

func TestCreate_UsaAlActorComoDueno(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	sale := create(t, uc)
	assert.Equal(t, owner.ID, sale.OwnerID)
	assert.True(t, sale.IsOpen())

	it, err := store.Repos().Inventory.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 22, it.Quantity)

	_, err = uc.Create(ctx, dto.CreateOwnerSaleRequest{}, entity.Actor{})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestComplete_DosMovimientosQueSumanCero(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	sale := create(t, uc)

	done, err := uc.Complete(ctx, sale.ID, dto.CompleteRequest{ReturnedItems: []dto.ReturnedItemRequest{
		{ProductID: "p1", FlavorID: "f1", Quantity: 2, DestinationFreezerID: "fz1"},
		{ProductID: "p1", FlavorID: "f1", Quantity: 1, IsDeformed: true, DestinationFreezerID: "fz1"},
	}}, owner)
	require.NoError(t, err)

	assert.False(t, done.IsOpen())
	assert.Equal(t, 5, done.SoldQuantity)
	assert.True(t, done.AmountDue.Equal(dec("12.5")))
	assert.True(t, done.AutoWithdrawal.Equal(done.AmountDue))

	entries, err := store.Repos().Cash.ListByDocument(ctx, "owner_sales", sale.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.CashOwnerSale, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(dec("12.5")))
	assert.Equal(t, entity.CashOwnerWithdrawal, entries[1].Type)
	assert.True(t, entries[1].Amount.Equal(dec("-12.5")))
	assert.True(t, entries[1].Balance.IsZero(), "el saldo no cambia")

	// La deforme queda a nombre del dueño.
	deformed, err := store.Repos().Inventory.ListWorkerDeformed(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, deformed, 1)
	assert.Equal(t, 1, deformed[0].Quantity)

	full, err := uc.Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, full.ReturnedItems, 2)

	_, err = uc.Complete(ctx, sale.ID, dto.CompleteRequest{}, owner)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "una venta cerrada no se cierra de nuevo")
}

func TestGet_Inexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Get(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestList(t *testing.T) {
	uc, _ := setup(t)
	create(t, uc)
	create(t, uc)

	list, err := uc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
