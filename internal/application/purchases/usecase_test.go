package purchases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/purchases"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/infrastructure/memory"
)

var owner = entity.Actor{ID: "owner-1", Role: entity.RoleOwner}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*purchases.UseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.SeedInventory(entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 4, MinStockAlert: 20,
	})
	return purchases.NewUseCase(store, store.Repos().Purchases, inventory.NewLedger(20)), store
}

func TestCreate_SumaAlInventario(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	out, err := uc.Create(ctx, dto.CreatePurchaseRequest{
		ProviderID:    "pr1",
		PaymentStatus: entity.PurchasePaid,
		Items: []dto.PurchaseItemRequest{
			{ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 6, UnitPrice: dec("1.5")},
			{ProductID: "p2", FlavorID: "f1", FreezerID: "fz1", Quantity: 10, UnitPrice: dec("1")},
		},
	}, owner)
	require.NoError(t, err)
	assert.True(t, out.Purchase.Total.Equal(dec("19")), "total: %s", out.Purchase.Total)
	assert.NotNil(t, out.Purchase.PaidAt)
	require.Len(t, out.Items, 2)

	it, err := store.Repos().Inventory.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 10, it.Quantity, "se fusiona con la pila existente")

	piles, err := store.Repos().Inventory.ListByFreezer(ctx, "fz1")
	require.NoError(t, err)
	assert.Len(t, piles, 2)

	_, n, err := store.Repos().Cash.SumAmounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "la compra no mueve caja")

	got, err := uc.Get(ctx, out.Purchase.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	list, err := uc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_ACreditoSinFechaDePago(t *testing.T) {
	uc, _ := setup(t)

	out, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		ProviderID:    "pr2",
		PaymentStatus: entity.PurchaseCredit,
		Items:         []dto.PurchaseItemRequest{{ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 1, UnitPrice: dec("1")}},
	}, owner)
	require.NoError(t, err)
	assert.Nil(t, out.Purchase.PaidAt)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	item := dto.PurchaseItemRequest{ProductID: "p1", FlavorID: "f1", FreezerID: "fz1", Quantity: 1, UnitPrice: dec("1")}

	tests := []struct {
		name string
		in   dto.CreatePurchaseRequest
	}{
		{"sin proveedor", dto.CreatePurchaseRequest{PaymentStatus: entity.PurchasePaid, Items: []dto.PurchaseItemRequest{item}}},
		{"estado de pago inválido", dto.CreatePurchaseRequest{ProviderID: "pr1", PaymentStatus: "pending", Items: []dto.PurchaseItemRequest{item}}},
		{"sin líneas", dto.CreatePurchaseRequest{ProviderID: "pr1", PaymentStatus: entity.PurchasePaid}},
		{"cantidad cero", dto.CreatePurchaseRequest{ProviderID: "pr1", PaymentStatus: entity.PurchasePaid, Items: []dto.PurchaseItemRequest{{ProductID: "p1", FlavorID: "f1", FreezerID: "fz1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in, owner)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "error: %v", err)
		})
	}

	it, err := store.Repos().Inventory.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 4, it.Quantity)

	_, err = uc.Get(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
