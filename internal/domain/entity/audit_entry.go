package entity

import (
	"encoding/json"
	"time"
)

// Acciones de auditoría.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditEntry registro de auditoría con instantáneas JSON antes/después.
type AuditEntry struct {
	ID            string          `json:"id"`
	Action        string          `json:"action"`
	TableName     string          `json:"table_name"`
	RecordID      string          `json:"record_id"`
	ChangesBefore json.RawMessage `json:"changes_before,omitempty"`
	ChangesAfter  json.RawMessage `json:"changes_after,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
