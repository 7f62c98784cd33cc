package transfers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/transfers"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/infrastructure/memory"
)

var admin = entity.Actor{ID: "admin-1", Role: entity.RoleAdmin}

func setup(t *testing.T) (*transfers.UseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.SeedInventory(
		entity.InventoryItem{ID: "src", FreezerID: "fzA", ProductID: "p1", FlavorID: "f1", ProviderID: "prX", Quantity: 30, MinStockAlert: 20},
		entity.InventoryItem{ID: "src2", FreezerID: "fzA", ProductID: "p2", FlavorID: "f1", ProviderID: "prY", Quantity: 10, MinStockAlert: 20},
	)
	return transfers.NewUseCase(store, store.Repos().Transfers, inventory.NewLedger(20)), store
}

func pilesIn(t *testing.T, store *memory.Store, freezerID string) []*entity.InventoryItem {
	t.Helper()
	items, err := store.Repos().Inventory.ListByFreezer(context.Background(), freezerID)
	require.NoError(t, err)
	return items
}

func TestCreate_ConservaProveedor(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	out, err := uc.Create(ctx, dto.CreateTransferRequest{
		FromFreezerID: "fzA", ToFreezerID: "fzB",
		Items: []dto.TransferItemRequest{{ProductID: "p1", FlavorID: "f1", Quantity: 12}},
	}, admin)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)

	dst := pilesIn(t, store, "fzB")
	require.Len(t, dst, 1)
	assert.Equal(t, "prX", dst[0].ProviderID)
	assert.Equal(t, 12, dst[0].Quantity)

	src, err := store.Repos().Inventory.GetByID(ctx, "src")
	require.NoError(t, err)
	assert.Equal(t, 18, src.Quantity)

	got, err := uc.Get(ctx, out.Transfer.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	byFreezer, err := uc.ListByFreezer(ctx, "fzB")
	require.NoError(t, err)
	assert.Len(t, byFreezer, 1)
}

func TestCreate_TodoONada(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	_, err := uc.Create(ctx, dto.CreateTransferRequest{
		FromFreezerID: "fzA", ToFreezerID: "fzB",
		Items: []dto.TransferItemRequest{
			{ProductID: "p1", FlavorID: "f1", Quantity: 5},
			{ProductID: "p2", FlavorID: "f1", Quantity: 50},
		},
	}, admin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Empty(t, pilesIn(t, store, "fzB"))
	src, err := store.Repos().Inventory.GetByID(ctx, "src")
	require.NoError(t, err)
	assert.Equal(t, 30, src.Quantity, "la primera línea se revierte")

	list, err := uc.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	tests := []struct {
		name string
		in   dto.CreateTransferRequest
		want error
	}{
		{
			name: "mismo congelador",
			in:   dto.CreateTransferRequest{FromFreezerID: "fzA", ToFreezerID: "fzA", Items: []dto.TransferItemRequest{{ProductID: "p1", FlavorID: "f1", Quantity: 1}}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "sin líneas",
			in:   dto.CreateTransferRequest{FromFreezerID: "fzA", ToFreezerID: "fzB"},
			want: domain.ErrInvalidInput,
		},
		{
			name: "cantidad cero",
			in:   dto.CreateTransferRequest{FromFreezerID: "fzA", ToFreezerID: "fzB", Items: []dto.TransferItemRequest{{ProductID: "p1", FlavorID: "f1"}}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "producto sin pila en origen",
			in:   dto.CreateTransferRequest{FromFreezerID: "fzA", ToFreezerID: "fzB", Items: []dto.TransferItemRequest{{ProductID: "p9", FlavorID: "f1", Quantity: 1}}},
			want: domain.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in, admin)
			assert.True(t, errors.Is(err, tt.want), "error: %v", err)
		})
	}
}

func TestCreate_IgnoraPilasDeformes(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	w := "w1"
	store.SeedInventory(entity.InventoryItem{
		ID: "def", FreezerID: "fzA", ProductID: "p3", FlavorID: "f1", ProviderID: "prZ",
		Quantity: 9, IsDeformed: true, AssignedWorkerID: &w,
	})

	_, err := uc.Create(ctx, dto.CreateTransferRequest{
		FromFreezerID: "fzA", ToFreezerID: "fzB",
		Items: []dto.TransferItemRequest{{ProductID: "p3", FlavorID: "f1", Quantity: 1}},
	}, admin)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
