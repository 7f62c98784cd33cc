package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = cashRepo{}

type cashRepo struct{ db }

// LockHead en memoria el bloqueo lo da el mutex de la transacción.
func (r cashRepo) LockHead(ctx context.Context) (*entity.CashHead, error) {
	return r.Head(ctx)
}

func (r cashRepo) Head(_ context.Context) (*entity.CashHead, error) {
	var h entity.CashHead
	err := r.do(func(st *state) error {
		h = st.head
		return nil
	})
	return &h, err
}

func (r cashRepo) Insert(_ context.Context, e *entity.CashEntry) error {
	return r.do(func(st *state) error {
		if e.Seq != st.head.LastSeq+1 {
			return fmt.Errorf("insert cash entry: seq %d fuera de orden (cabecera en %d)", e.Seq, st.head.LastSeq)
		}
		st.cash = append(st.cash, ptrCopy(e))
		st.head = entity.CashHead{Balance: e.Balance, LastSeq: e.Seq, UpdatedAt: e.CreatedAt}
		return nil
	})
}

// Snapshot lee todo bajo un único bloqueo del mutex.
func (r cashRepo) Snapshot(_ context.Context) (*entity.CashSnapshot, error) {
	out := &entity.CashSnapshot{LatestBalance: decimal.Zero, Sum: decimal.Zero}
	err := r.do(func(st *state) error {
		for _, e := range st.cash {
			out.Sum = out.Sum.Add(e.Amount)
		}
		out.Entries = len(st.cash)
		if n := len(st.cash); n > 0 {
			out.LatestBalance = st.cash[n-1].Balance
		}
		out.Head = st.head
		return nil
	})
	return out, err
}

func (r cashRepo) SumAmounts(_ context.Context) (decimal.Decimal, int, error) {
	sum := decimal.Zero
	var n int
	err := r.do(func(st *state) error {
		for _, e := range st.cash {
			sum = sum.Add(e.Amount)
		}
		n = len(st.cash)
		return nil
	})
	return sum, n, err
}

func (r cashRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.CashEntry, error) {
	var out []*entity.CashEntry
	err := r.do(func(st *state) error {
		for _, e := range st.cash {
			if !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
				out = append(out, ptrCopy(e))
			}
		}
		return nil
	})
	return out, err
}

func (r cashRepo) ListByDocument(_ context.Context, docType, docID string) ([]*entity.CashEntry, error) {
	var out []*entity.CashEntry
	err := r.do(func(st *state) error {
		for _, e := range st.cash {
			if e.RelatedDocType != nil && e.RelatedDocID != nil && *e.RelatedDocType == docType && *e.RelatedDocID == docID {
				out = append(out, ptrCopy(e))
			}
		}
		return nil
	})
	return out, err
}
