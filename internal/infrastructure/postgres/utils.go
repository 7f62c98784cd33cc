package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/helados-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), p. ej. quantity >= 0.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// isInvalidText verifica si un error es un valor mal formado para el tipo de la columna (22P02),
// p. ej. un id que no es UUID.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// mapInputError convierte 22P02 en ErrInvalidInput; el resto pasa sin cambios.
func mapInputError(err error) error {
	if err != nil && isInvalidText(err) {
		return domain.Invalid("identificador con formato inválido")
	}
	return err
}

// inputGuard envuelve un Querier y traduce los valores mal formados a errores de validación
// antes de que los repositorios los envuelvan.
type inputGuard struct {
	q Querier
}

func (g inputGuard) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tag, err := g.q.Exec(ctx, sql, args...)
	return tag, mapInputError(err)
}

func (g inputGuard) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := g.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapInputError(err)
	}
	return guardedRows{rows}, nil
}

// guardedRows el error del servidor puede llegar recién al iterar.
type guardedRows struct {
	pgx.Rows
}

func (r guardedRows) Err() error {
	return mapInputError(r.Rows.Err())
}

func (g inputGuard) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return guardedRow{g.q.QueryRow(ctx, sql, args...)}
}

type guardedRow struct {
	row pgx.Row
}

func (r guardedRow) Scan(dest ...any) error {
	return mapInputError(r.row.Scan(dest...))
}
