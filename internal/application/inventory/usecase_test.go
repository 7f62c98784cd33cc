package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/infrastructure/memory"
)

var owner = entity.Actor{ID: "owner-1", Role: entity.RoleOwner}

func strPtr(s string) *string { return &s }

func newUseCase(t *testing.T, seed ...entity.InventoryItem) (*inventory.UseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.SeedInventory(seed...)
	return inventory.NewUseCase(store, store.Repos().Inventory, inventory.NewLedger(0)), store
}

func totalUnits(t *testing.T, uc *inventory.UseCase) int {
	t.Helper()
	items, err := uc.ListAll(context.Background())
	require.NoError(t, err)
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func TestSubtract_RestaYAudita(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t, entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 10, MinStockAlert: 20,
	})

	require.NoError(t, uc.Subtract(ctx, "i1", 4, owner))

	item, err := uc.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 6, item.Quantity)
	assert.Equal(t, owner.ID, item.UpdatedBy)

	trail, err := store.Repos().Audit.ListByRecord(ctx, "inventory", "i1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, entity.AuditUpdate, trail[0].Action)
	assert.NotEmpty(t, trail[0].ChangesBefore)
	assert.NotEmpty(t, trail[0].ChangesAfter)
}

func TestSubtract_StockInsuficienteNoModifica(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t, entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 3,
	})

	err := uc.Subtract(ctx, "i1", 5, owner)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "i1", stockErr.InventoryID)

	item, err := uc.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity, "la pila no debe cambiar")

	trail, err := store.Repos().Audit.ListByRecord(ctx, "inventory", "i1")
	require.NoError(t, err)
	assert.Empty(t, trail, "una resta fallida no deja auditoría")
}

func TestSubtract_PilaDeformeEnCeroSeElimina(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t, entity.InventoryItem{
		ID: "d1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1",
		Quantity: 2, IsDeformed: true, AssignedWorkerID: strPtr("w1"),
	})

	require.NoError(t, uc.Subtract(ctx, "d1", 2, owner))

	_, err := uc.GetByID(ctx, "d1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	trail, err := store.Repos().Audit.ListByRecord(ctx, "inventory", "d1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, entity.AuditDelete, trail[0].Action)
	assert.Empty(t, trail[0].ChangesAfter)
}

func TestSubtract_PilaVendibleEnCeroSeConserva(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 2,
	})

	require.NoError(t, uc.Subtract(ctx, "i1", 2, owner))

	item, err := uc.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
}

func TestSubtract_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	err := uc.Subtract(ctx, "i1", 0, owner)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = uc.Subtract(ctx, "no-existe", 1, owner)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMergeAdd_FusionaMismaClave(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t, entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 5, MinStockAlert: 20,
	})

	item, err := uc.MergeAdd(ctx, dto.MergeAddRequest{
		FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 7,
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)
	assert.Equal(t, 12, item.Quantity)

	trail, err := store.Repos().Audit.ListByRecord(ctx, "inventory", "i1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, entity.AuditUpdate, trail[0].Action)
	assert.Contains(t, string(trail[0].ChangesBefore), `"quantity":5`)
	assert.Contains(t, string(trail[0].ChangesAfter), `"quantity":12`)

	all, err := uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMergeAdd_OtroProveedorCreaPila(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t, entity.InventoryItem{
		ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 5,
	})

	item, err := uc.AddStock(ctx, dto.AddStockRequest{
		FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr2", Quantity: 3,
	}, owner)
	require.NoError(t, err)
	assert.NotEqual(t, "i1", item.ID)
	assert.Equal(t, inventory.DefaultMinStockAlert, item.MinStockAlert)
	assert.Equal(t, 8, totalUnits(t, uc))

	trail, err := store.Repos().Audit.ListByRecord(ctx, "inventory", item.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, entity.AuditCreate, trail[0].Action, "una pila nueva se audita como alta")
	assert.Empty(t, trail[0].ChangesBefore)
}

func TestMergeAdd_Deforme(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.MergeAdd(ctx, dto.MergeAddRequest{
		FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 2, IsDeformed: true,
	}, owner)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "deforme sin trabajador asignado")

	item, err := uc.MergeAdd(ctx, dto.MergeAddRequest{
		FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 2,
		IsDeformed: true, AssignedWorkerID: "w1",
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, 0, item.MinStockAlert)
	require.NotNil(t, item.AssignedWorkerID)
	assert.Equal(t, "w1", *item.AssignedWorkerID)

	mine, err := uc.ListWorkerDeformed(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestMergeAdd_CantidadInvalida(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.MergeAdd(context.Background(), dto.MergeAddRequest{
		FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 0,
	}, owner)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListLowStock_ExcluyeDeformes(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t,
		entity.InventoryItem{ID: "bajo", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 5, MinStockAlert: 20},
		entity.InventoryItem{ID: "ok", FreezerID: "fz1", ProductID: "p2", FlavorID: "f1", ProviderID: "pr1", Quantity: 50, MinStockAlert: 20},
		entity.InventoryItem{ID: "def", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 1, IsDeformed: true, AssignedWorkerID: strPtr("w1")},
	)

	low, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "bajo", low[0].ID)

	sellable, err := uc.ListSellable(ctx)
	require.NoError(t, err)
	assert.Len(t, sellable, 2)
}

func TestUpdateMinStockAlert(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t,
		entity.InventoryItem{ID: "i1", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 5, MinStockAlert: 20},
		entity.InventoryItem{ID: "def", FreezerID: "fz1", ProductID: "p1", FlavorID: "f1", ProviderID: "pr1", Quantity: 1, IsDeformed: true, AssignedWorkerID: strPtr("w1")},
	)

	item, err := uc.UpdateMinStockAlert(ctx, "i1", 3, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, item.MinStockAlert)

	_, err = uc.UpdateMinStockAlert(ctx, "def", 3, owner)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.UpdateMinStockAlert(ctx, "i1", -1, owner)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
