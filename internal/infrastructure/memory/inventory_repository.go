package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ repository.InventoryRepository = inventoryRepo{}

type inventoryRepo struct{ db }

func (r inventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.do(func(st *state) error {
		out = ptrCopy(st.inventory[id])
		return nil
	})
	return out, err
}

func (r inventoryRepo) list(filter func(*entity.InventoryItem) bool) []*entity.InventoryItem {
	var out []*entity.InventoryItem
	_ = r.do(func(st *state) error {
		for _, it := range st.inventory {
			if filter(it) {
				out = append(out, ptrCopy(it))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FreezerID != b.FreezerID {
			return a.FreezerID < b.FreezerID
		}
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		return a.ID < b.ID
	})
	return out
}

func (r inventoryRepo) ListAll(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.list(func(*entity.InventoryItem) bool { return true }), nil
}

func (r inventoryRepo) ListByFreezer(_ context.Context, freezerID string) ([]*entity.InventoryItem, error) {
	return r.list(func(it *entity.InventoryItem) bool { return it.FreezerID == freezerID }), nil
}

func (r inventoryRepo) ListSellable(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.list(func(it *entity.InventoryItem) bool { return !it.IsDeformed }), nil
}

func (r inventoryRepo) ListLowStock(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.list(func(it *entity.InventoryItem) bool { return it.IsLowStock() }), nil
}

func (r inventoryRepo) ListWorkerDeformed(_ context.Context, workerID string) ([]*entity.InventoryItem, error) {
	return r.list(func(it *entity.InventoryItem) bool {
		return it.IsDeformed && it.AssignedWorkerID != nil && *it.AssignedWorkerID == workerID
	}), nil
}

func (r inventoryRepo) SubtractIfAvailable(_ context.Context, id string, qty int, actorID string, at time.Time) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		cur := st.inventory[id]
		if cur == nil || cur.Quantity < qty {
			return nil
		}
		next := *cur
		next.Quantity -= qty
		next.LastUpdated = at
		next.UpdatedBy = actorID
		st.inventory[id] = &next
		ok = true
		return nil
	})
	return ok, err
}

func (r inventoryRepo) DeleteIfDepletedDeformed(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		if cur := st.inventory[id]; cur != nil && cur.IsDeformed && cur.Quantity == 0 {
			delete(st.inventory, id)
		}
		return nil
	})
}

func (r inventoryRepo) MergeAdd(_ context.Context, key entity.PileKey, qty, minStockAlert int, actorID string, at time.Time) (*entity.InventoryItem, bool, error) {
	var out *entity.InventoryItem
	var created bool
	err := r.do(func(st *state) error {
		for id, cur := range st.inventory {
			if cur.Key() != key {
				continue
			}
			next := *cur
			next.Quantity += qty
			next.LastUpdated = at
			next.UpdatedBy = actorID
			st.inventory[id] = &next
			out = ptrCopy(&next)
			return nil
		}
		it := &entity.InventoryItem{
			ID:               uuid.New().String(),
			FreezerID:        key.FreezerID,
			ProductID:        key.ProductID,
			FlavorID:         key.FlavorID,
			ProviderID:       key.ProviderID,
			Quantity:         qty,
			MinStockAlert:    minStockAlert,
			IsDeformed:       key.IsDeformed,
			AssignedWorkerID: key.WorkerPtr(),
			LastUpdated:      at,
			UpdatedBy:        actorID,
		}
		st.inventory[it.ID] = it
		out = ptrCopy(it)
		created = true
		return nil
	})
	return out, created, err
}

func (r inventoryRepo) FindSourcePile(_ context.Context, freezerID, productID, flavorID string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.do(func(st *state) error {
		for _, it := range st.inventory {
			if it.FreezerID != freezerID || it.ProductID != productID || it.FlavorID != flavorID {
				continue
			}
			if it.IsDeformed || it.AssignedWorkerID != nil {
				continue
			}
			if out == nil || it.Quantity > out.Quantity || (it.Quantity == out.Quantity && it.ID < out.ID) {
				out = it
			}
		}
		out = ptrCopy(out)
		return nil
	})
	return out, err
}

func (r inventoryRepo) FindAnyProvider(_ context.Context, productID, flavorID string) (string, error) {
	var provider string
	err := r.do(func(st *state) error {
		var best *entity.InventoryItem
		for _, it := range st.inventory {
			if it.ProductID == productID && it.FlavorID == flavorID && (best == nil || it.ID < best.ID) {
				best = it
			}
		}
		if best != nil {
			provider = best.ProviderID
		}
		return nil
	})
	return provider, err
}

func (r inventoryRepo) UpdateMinStockAlert(_ context.Context, id string, minStockAlert int, actorID string, at time.Time) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.do(func(st *state) error {
		cur := st.inventory[id]
		if cur == nil {
			return nil
		}
		next := *cur
		next.MinStockAlert = minStockAlert
		next.LastUpdated = at
		next.UpdatedBy = actorID
		st.inventory[id] = &next
		out = ptrCopy(&next)
		return nil
	})
	return out, err
}
