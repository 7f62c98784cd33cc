package cash

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// UseCase movimientos manuales y reportes del libro de caja.
type UseCase struct {
	txRunner ports.TxRunner
	repo     repository.CashRegisterRepository
	ledger   *Ledger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewUseCase(txRunner ports.TxRunner, repo repository.CashRegisterRepository, ledger *Ledger) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, ledger: ledger, now: time.Now}
}

// AddEntry inserta un movimiento con signo de cualquier tipo conocido.
func (uc *UseCase) AddEntry(ctx context.Context, in dto.CashEntryRequest, actor entity.Actor) (*entity.CashEntry, error) {
	if !entity.ValidCashType(in.Type) {
		return nil, domain.Invalid("tipo de movimiento desconocido: %s", in.Type)
	}
	if in.Amount.IsZero() {
		return nil, domain.Invalid("el monto no puede ser cero")
	}
	return uc.append(ctx, AppendInput{
		Type:           in.Type,
		Amount:         in.Amount,
		Description:    in.Description,
		Category:       in.Category,
		RelatedDocType: in.RelatedDocType,
		RelatedDocID:   in.RelatedDocID,
	}, actor)
}

// AddExpense registra un gasto; el monto llega positivo y se guarda negativo.
func (uc *UseCase) AddExpense(ctx context.Context, in dto.ExpenseRequest, actor entity.Actor) (*entity.CashEntry, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("el monto del gasto debe ser positivo")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, domain.Invalid("la categoría del gasto es obligatoria")
	}
	return uc.append(ctx, AppendInput{
		Type:        entity.CashExpense,
		Amount:      in.Amount.Neg(),
		Description: in.Description,
		Category:    &category,
	}, actor)
}

// AddWithdrawal registra un retiro del dueño; el monto llega positivo y se guarda negativo.
func (uc *UseCase) AddWithdrawal(ctx context.Context, in dto.WithdrawalRequest, actor entity.Actor) (*entity.CashEntry, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("el monto del retiro debe ser positivo")
	}
	return uc.append(ctx, AppendInput{
		Type:        entity.CashOwnerWithdrawal,
		Amount:      in.Amount.Neg(),
		Description: in.Description,
	}, actor)
}

func (uc *UseCase) append(ctx context.Context, in AppendInput, actor entity.Actor) (*entity.CashEntry, error) {
	var out *entity.CashEntry
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		e, err := uc.ledger.Append(ctx, r.Cash, in, actor)
		if err != nil {
			return err
		}
		out = e
		return audit.Record(ctx, r.Audit, audit.Input{
			Action: entity.AuditCreate, Table: audit.TableCashRegister, RecordID: e.ID, After: e,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Balance saldo actual y verificación de consistencia del libro sobre una sola lectura.
// Una inconsistencia se registra en el log; no es un error de la operación.
func (uc *UseCase) Balance(ctx context.Context) (*dto.BalanceInfo, error) {
	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	info := &dto.BalanceInfo{
		CurrentBalance:    snap.LatestBalance,
		CalculatedBalance: snap.Sum,
		HeadBalance:       snap.Head.Balance,
		Entries:           snap.Entries,
	}
	info.IsConsistent = snap.LatestBalance.Equal(snap.Sum) &&
		snap.Head.Balance.Equal(snap.Sum) &&
		snap.Head.LastSeq == int64(snap.Entries)
	if !info.IsConsistent {
		log.Error().
			Str("current_balance", info.CurrentBalance.String()).
			Str("calculated_balance", info.CalculatedBalance.String()).
			Str("head_balance", info.HeadBalance.String()).
			Int("entries", info.Entries).
			Msg("libro de caja inconsistente")
	}
	return info, nil
}

// Today movimientos del día en curso (hora local del servidor).
func (uc *UseCase) Today(ctx context.Context) (*dto.CashReport, error) {
	from := startOfDay(uc.now())
	return uc.report(ctx, from, from.AddDate(0, 0, 1))
}

// ByRange movimientos con from <= created_at < to.
func (uc *UseCase) ByRange(ctx context.Context, from, to time.Time) (*dto.CashReport, error) {
	if !from.Before(to) {
		return nil, domain.Invalid("el rango de fechas es inválido")
	}
	return uc.report(ctx, from, to)
}

// Monthly movimientos de un mes calendario.
func (uc *UseCase) Monthly(ctx context.Context, year int, month time.Month) (*dto.CashReport, error) {
	if month < time.January || month > time.December || year < 2000 {
		return nil, domain.Invalid("mes o año inválido")
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return uc.report(ctx, from, from.AddDate(0, 1, 0))
}

// ByDocument movimientos asociados a un documento (p. ej. owner_sales/<id>).
func (uc *UseCase) ByDocument(ctx context.Context, docType, docID string) ([]*entity.CashEntry, error) {
	return uc.repo.ListByDocument(ctx, docType, docID)
}

func (uc *UseCase) report(ctx context.Context, from, to time.Time) (*dto.CashReport, error) {
	entries, err := uc.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	rep := &dto.CashReport{Entries: entries, Income: decimal.Zero, Outflow: decimal.Zero}
	for _, e := range entries {
		if e.Amount.IsPositive() {
			rep.Income = rep.Income.Add(e.Amount)
		} else {
			rep.Outflow = rep.Outflow.Add(e.Amount.Neg())
		}
	}
	rep.Net = rep.Income.Sub(rep.Outflow)
	return rep, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
