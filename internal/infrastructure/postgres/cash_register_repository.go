package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

const cashColumns = `id, seq, type, amount, balance, description, category,
	related_doc_type, related_doc_id, created_at, created_by`

// CashRegisterRepo libro de caja sobre PostgreSQL. La fila cash_register_head (id = 1)
// es el punto de serialización de las inserciones.
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

func scanCash(row pgx.Row) (*entity.CashEntry, error) {
	var e entity.CashEntry
	err := row.Scan(
		&e.ID, &e.Seq, &e.Type, &e.Amount, &e.Balance, &e.Description, &e.Category,
		&e.RelatedDocType, &e.RelatedDocID, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CashRegisterRepo) head(ctx context.Context, lock bool) (*entity.CashHead, error) {
	query := `SELECT balance, last_seq, updated_at FROM cash_register_head WHERE id = 1`
	if lock {
		query += ` FOR UPDATE`
	}
	var h entity.CashHead
	if err := r.q.QueryRow(ctx, query).Scan(&h.Balance, &h.LastSeq, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cash_register_head sin inicializar: %w", err)
		}
		return nil, fmt.Errorf("get cash head: %w", err)
	}
	return &h, nil
}

// LockHead SELECT ... FOR UPDATE sobre la cabecera; el bloqueo dura hasta Commit/Rollback.
func (r *CashRegisterRepo) LockHead(ctx context.Context) (*entity.CashHead, error) {
	return r.head(ctx, true)
}

func (r *CashRegisterRepo) Head(ctx context.Context) (*entity.CashHead, error) {
	return r.head(ctx, false)
}

// Insert guarda el movimiento y mueve la cabecera. Exige que Seq sea el siguiente.
func (r *CashRegisterRepo) Insert(ctx context.Context, e *entity.CashEntry) error {
	insert := `
		INSERT INTO cash_register (` + cashColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, insert,
		e.ID, e.Seq, e.Type, e.Amount, e.Balance, e.Description, e.Category,
		e.RelatedDocType, e.RelatedDocID, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert cash entry: %w", err)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE cash_register_head SET balance = $1, last_seq = $2, updated_at = $3 WHERE id = 1 AND last_seq = $2 - 1`,
		e.Balance, e.Seq, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("advance cash head: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("advance cash head: seq %d fuera de orden", e.Seq)
	}
	return nil
}

// Snapshot una sola sentencia: todas las subconsultas ven la misma instantánea, así una
// inserción concurrente no puede quedar contada a medias.
func (r *CashRegisterRepo) Snapshot(ctx context.Context) (*entity.CashSnapshot, error) {
	query := `
		SELECT
			COALESCE((SELECT balance FROM cash_register ORDER BY seq DESC LIMIT 1), 0),
			COALESCE(SUM(c.amount), 0),
			COUNT(c.id),
			h.balance, h.last_seq, h.updated_at
		FROM cash_register_head h
		LEFT JOIN cash_register c ON true
		WHERE h.id = 1
		GROUP BY h.balance, h.last_seq, h.updated_at`
	var s entity.CashSnapshot
	err := r.q.QueryRow(ctx, query).Scan(
		&s.LatestBalance, &s.Sum, &s.Entries,
		&s.Head.Balance, &s.Head.LastSeq, &s.Head.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cash_register_head sin inicializar: %w", err)
		}
		return nil, fmt.Errorf("cash snapshot: %w", err)
	}
	return &s, nil
}

// SumAmounts suma de todos los montos desde cero y cantidad de movimientos.
func (r *CashRegisterRepo) SumAmounts(ctx context.Context) (decimal.Decimal, int, error) {
	var sum decimal.Decimal
	var n int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM cash_register`).Scan(&sum, &n)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sum cash amounts: %w", err)
	}
	return sum, n, nil
}

func (r *CashRegisterRepo) list(ctx context.Context, where string, args ...any) ([]*entity.CashEntry, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cashColumns+` FROM cash_register `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashEntry
	for rows.Next() {
		e, err := scanCash(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *CashRegisterRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.CashEntry, error) {
	return r.list(ctx, "WHERE created_at >= $1 AND created_at < $2", from, to)
}

func (r *CashRegisterRepo) ListByDocument(ctx context.Context, docType, docID string) ([]*entity.CashEntry, error) {
	return r.list(ctx, "WHERE related_doc_type = $1 AND related_doc_id = $2", docType, docID)
}
