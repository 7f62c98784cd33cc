package repository

import (
	"context"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// AuditLogRepository puerto del registro de auditoría.
type AuditLogRepository interface {
	Create(ctx context.Context, e *entity.AuditEntry) error
	ListByRecord(ctx context.Context, tableName, recordID string) ([]*entity.AuditEntry, error)
}
