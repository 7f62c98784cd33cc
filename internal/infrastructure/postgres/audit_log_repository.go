package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo registro de auditoría (instantáneas en JSONB).
type AuditLogRepo struct {
	q Querier
}

func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, action, table_name, record_id, changes_before, changes_after, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Action, e.TableName, e.RecordID, jsonOrNil(e.ChangesBefore), jsonOrNil(e.ChangesAfter),
		e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) ListByRecord(ctx context.Context, tableName, recordID string) ([]*entity.AuditEntry, error) {
	query := `
		SELECT id, action, table_name, record_id, changes_before, changes_after, created_by, created_at
		FROM audit_log WHERE table_name = $1 AND record_id = $2
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, tableName, recordID)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var before, after []byte
		if err := rows.Scan(&e.ID, &e.Action, &e.TableName, &e.RecordID, &before, &after, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.ChangesBefore = before
		e.ChangesAfter = after
		list = append(list, &e)
	}
	return list, rows.Err()
}

// jsonOrNil evita insertar un JSON vacío: sin instantánea se guarda NULL.
func jsonOrNil(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
