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
	_ repository.WorkerTripRepository = tripRepo{}
	_ repository.OwnerSaleRepository  = ownerSaleRepo{}
)

type tripRepo struct{ db }

func (r tripRepo) Create(_ context.Context, t *entity.WorkerTrip) error {
	return r.do(func(st *state) error {
		if _, dup := st.trips[t.ID]; dup {
			return fmt.Errorf("create trip: id duplicado %s", t.ID)
		}
		// Igual que la FK worker_trips.worker_id.
		if _, ok := st.workers[t.WorkerID]; !ok {
			return fmt.Errorf("create trip: trabajador %s inexistente", t.WorkerID)
		}
		st.trips[t.ID] = ptrCopy(t)
		return nil
	})
}

func (r tripRepo) AddLoadedItem(_ context.Context, it *entity.LoadedItem) error {
	return r.do(func(st *state) error {
		st.tripLoaded[it.ParentID] = append(st.tripLoaded[it.ParentID], ptrCopy(it))
		return nil
	})
}

func (r tripRepo) AddReturnedItem(_ context.Context, it *entity.ReturnedItem) error {
	return r.do(func(st *state) error {
		st.tripReturned[it.ParentID] = append(st.tripReturned[it.ParentID], ptrCopy(it))
		return nil
	})
}

func (r tripRepo) GetByID(_ context.Context, id string) (*entity.WorkerTrip, error) {
	var out *entity.WorkerTrip
	err := r.do(func(st *state) error {
		out = ptrCopy(st.trips[id])
		return nil
	})
	return out, err
}

func (r tripRepo) GetInProgressForUpdate(ctx context.Context, id string) (*entity.WorkerTrip, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil || t == nil || t.Status != entity.TripInProgress {
		return nil, err
	}
	return t, nil
}

func (r tripRepo) ListLoadedItems(_ context.Context, tripID string) ([]*entity.LoadedItem, error) {
	var out []*entity.LoadedItem
	err := r.do(func(st *state) error {
		out = copyAll(st.tripLoaded[tripID])
		return nil
	})
	return out, err
}

func (r tripRepo) ListReturnedItems(_ context.Context, tripID string) ([]*entity.ReturnedItem, error) {
	var out []*entity.ReturnedItem
	err := r.do(func(st *state) error {
		out = copyAll(st.tripReturned[tripID])
		return nil
	})
	return out, err
}

func (r tripRepo) Settle(_ context.Context, t *entity.WorkerTrip) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		cur := st.trips[t.ID]
		if cur == nil || cur.Status != entity.TripInProgress {
			return nil
		}
		next := *cur
		next.ReturnTime = t.ReturnTime
		next.Status = t.Status
		next.SoldQuantity = t.SoldQuantity
		next.AmountDue = t.AmountDue
		st.trips[t.ID] = &next
		ok = true
		return nil
	})
	return ok, err
}

func (r tripRepo) filter(keep func(*entity.WorkerTrip) bool) []*entity.WorkerTrip {
	var out []*entity.WorkerTrip
	_ = r.do(func(st *state) error {
		for _, t := range st.trips {
			if keep(t) {
				out = append(out, ptrCopy(t))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DepartureTime.Equal(out[j].DepartureTime) {
			return out[i].DepartureTime.After(out[j].DepartureTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r tripRepo) ListActive(_ context.Context) ([]*entity.WorkerTrip, error) {
	return r.filter(func(t *entity.WorkerTrip) bool { return t.Status == entity.TripInProgress }), nil
}

func (r tripRepo) ListByWorker(_ context.Context, workerID string, limit int) ([]*entity.WorkerTrip, error) {
	out := r.filter(func(t *entity.WorkerTrip) bool { return t.WorkerID == workerID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r tripRepo) ListReturnedBetween(_ context.Context, from, to time.Time) ([]*entity.WorkerTrip, error) {
	return r.filter(func(t *entity.WorkerTrip) bool {
		return t.Status == entity.TripReturned && t.ReturnTime != nil &&
			!t.ReturnTime.Before(from) && t.ReturnTime.Before(to)
	}), nil
}

func (r tripRepo) ListSettledByWorker(_ context.Context, workerID string) ([]*entity.WorkerTrip, error) {
	return r.filter(func(t *entity.WorkerTrip) bool {
		return t.WorkerID == workerID && t.Status == entity.TripReturned
	}), nil
}

type ownerSaleRepo struct{ db }

func (r ownerSaleRepo) Create(_ context.Context, s *entity.OwnerSale) error {
	return r.do(func(st *state) error {
		if _, dup := st.sales[s.ID]; dup {
			return fmt.Errorf("create owner sale: id duplicado %s", s.ID)
		}
		st.sales[s.ID] = ptrCopy(s)
		return nil
	})
}

func (r ownerSaleRepo) AddLoadedItem(_ context.Context, it *entity.LoadedItem) error {
	return r.do(func(st *state) error {
		st.saleLoaded[it.ParentID] = append(st.saleLoaded[it.ParentID], ptrCopy(it))
		return nil
	})
}

func (r ownerSaleRepo) AddReturnedItem(_ context.Context, it *entity.ReturnedItem) error {
	return r.do(func(st *state) error {
		st.saleReturned[it.ParentID] = append(st.saleReturned[it.ParentID], ptrCopy(it))
		return nil
	})
}

func (r ownerSaleRepo) GetByID(_ context.Context, id string) (*entity.OwnerSale, error) {
	var out *entity.OwnerSale
	err := r.do(func(st *state) error {
		out = ptrCopy(st.sales[id])
		return nil
	})
	return out, err
}

func (r ownerSaleRepo) GetOpenForUpdate(ctx context.Context, id string) (*entity.OwnerSale, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil || s == nil || !s.IsOpen() {
		return nil, err
	}
	return s, nil
}

func (r ownerSaleRepo) ListLoadedItems(_ context.Context, saleID string) ([]*entity.LoadedItem, error) {
	var out []*entity.LoadedItem
	err := r.do(func(st *state) error {
		out = copyAll(st.saleLoaded[saleID])
		return nil
	})
	return out, err
}

func (r ownerSaleRepo) ListReturnedItems(_ context.Context, saleID string) ([]*entity.ReturnedItem, error) {
	var out []*entity.ReturnedItem
	err := r.do(func(st *state) error {
		out = copyAll(st.saleReturned[saleID])
		return nil
	})
	return out, err
}

func (r ownerSaleRepo) Settle(_ context.Context, s *entity.OwnerSale) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		cur := st.sales[s.ID]
		if cur == nil || !cur.IsOpen() {
			return nil
		}
		next := *cur
		next.ReturnTime = s.ReturnTime
		next.SoldQuantity = s.SoldQuantity
		next.AmountDue = s.AmountDue
		next.AutoWithdrawal = s.AutoWithdrawal
		st.sales[s.ID] = &next
		ok = true
		return nil
	})
	return ok, err
}

func (r ownerSaleRepo) List(_ context.Context, limit int) ([]*entity.OwnerSale, error) {
	var out []*entity.OwnerSale
	err := r.do(func(st *state) error {
		for _, s := range st.sales {
			out = append(out, ptrCopy(s))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.After(out[j].DepartureTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}
