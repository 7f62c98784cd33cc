package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var (
	_ repository.LocalSaleRepository = localSaleRepo{}
	_ repository.PurchaseRepository  = purchaseRepo{}
)

type localSaleRepo struct{ db }

func (r localSaleRepo) Create(_ context.Context, s *entity.LocalSale) error {
	return r.do(func(st *state) error {
		if _, dup := st.localSales[s.ID]; dup {
			return fmt.Errorf("create local sale: id duplicado %s", s.ID)
		}
		st.localSales[s.ID] = ptrCopy(s)
		return nil
	})
}

func (r localSaleRepo) AddItem(_ context.Context, it *entity.LocalSaleItem) error {
	return r.do(func(st *state) error {
		st.localItems[it.SaleID] = append(st.localItems[it.SaleID], ptrCopy(it))
		return nil
	})
}

func (r localSaleRepo) GetByID(_ context.Context, id string) (*entity.LocalSale, error) {
	var out *entity.LocalSale
	err := r.do(func(st *state) error {
		out = ptrCopy(st.localSales[id])
		return nil
	})
	return out, err
}

func (r localSaleRepo) ListItems(_ context.Context, saleID string) ([]*entity.LocalSaleItem, error) {
	var out []*entity.LocalSaleItem
	err := r.do(func(st *state) error {
		out = copyAll(st.localItems[saleID])
		return nil
	})
	return out, err
}

func (r localSaleRepo) filter(keep func(*entity.LocalSale) bool) []*entity.LocalSale {
	var out []*entity.LocalSale
	_ = r.do(func(st *state) error {
		for _, s := range st.localSales {
			if keep(s) {
				out = append(out, ptrCopy(s))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r localSaleRepo) List(_ context.Context, limit int) ([]*entity.LocalSale, error) {
	out := r.filter(func(*entity.LocalSale) bool { return true })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r localSaleRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.LocalSale, error) {
	return r.filter(func(s *entity.LocalSale) bool {
		return !s.CreatedAt.Before(from) && s.CreatedAt.Before(to)
	}), nil
}

type purchaseRepo struct{ db }

func (r purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.do(func(st *state) error {
		if _, dup := st.purchases[p.ID]; dup {
			return fmt.Errorf("create purchase: id duplicado %s", p.ID)
		}
		st.purchases[p.ID] = ptrCopy(p)
		return nil
	})
}

func (r purchaseRepo) AddItem(_ context.Context, it *entity.PurchaseItem) error {
	return r.do(func(st *state) error {
		st.purchaseItems[it.PurchaseID] = append(st.purchaseItems[it.PurchaseID], ptrCopy(it))
		return nil
	})
}

func (r purchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.do(func(st *state) error {
		out = ptrCopy(st.purchases[id])
		return nil
	})
	return out, err
}

func (r purchaseRepo) ListItems(_ context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	err := r.do(func(st *state) error {
		out = copyAll(st.purchaseItems[purchaseID])
		return nil
	})
	return out, err
}

func (r purchaseRepo) List(_ context.Context, limit int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	_ = r.do(func(st *state) error {
		for _, p := range st.purchases {
			out = append(out, ptrCopy(p))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
