// Package audit escribe y consulta el registro de auditoría.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

// Tablas auditadas.
const (
	TableInventory    = "inventory"
	TableWorkerTrips  = "worker_trips"
	TableOwnerSales   = "owner_sales"
	TableTransfers    = "freezer_transfers"
	TableLocalSales   = "local_sales"
	TablePurchases    = "purchases"
	TableWorkers      = "workers"
	TablePayments     = "worker_payments"
	TableCashRegister = "cash_register"
)

// Input datos de un registro de auditoría. Before/After se serializan a JSON; nil se omite.
type Input struct {
	Action   string
	Table    string
	RecordID string
	Before   any
	After    any
}

// Record escribe el registro con el repositorio recibido (normalmente atado a la tx en curso).
func Record(ctx context.Context, repo repository.AuditLogRepository, in Input, actor entity.Actor) error {
	before, err := snapshot(in.Before)
	if err != nil {
		return fmt.Errorf("audit before: %w", err)
	}
	after, err := snapshot(in.After)
	if err != nil {
		return fmt.Errorf("audit after: %w", err)
	}
	e := &entity.AuditEntry{
		ID:            uuid.New().String(),
		Action:        in.Action,
		TableName:     in.Table,
		RecordID:      in.RecordID,
		ChangesBefore: before,
		ChangesAfter:  after,
		CreatedBy:     actor.ID,
		CreatedAt:     time.Now(),
	}
	if err := repo.Create(ctx, e); err != nil {
		return fmt.Errorf("audit %s %s: %w", in.Action, in.Table, err)
	}
	return nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// un puntero nil tipado se serializa como null
	if string(b) == "null" {
		return nil, nil
	}
	return b, nil
}

// UseCase consultas del registro de auditoría.
type UseCase struct {
	repo repository.AuditLogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AuditLogRepository) *UseCase {
	return &UseCase{repo: repo}
}

// ByRecord historial de un registro, del más antiguo al más reciente.
func (uc *UseCase) ByRecord(ctx context.Context, table, recordID string) ([]*entity.AuditEntry, error) {
	return uc.repo.ListByRecord(ctx, table, recordID)
}
