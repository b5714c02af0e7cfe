package auditRepo

import (
	"context"

	"portflow/models"
)

// AuditRepository defines append-only data access for audit logs.
type AuditRepository interface {
	// Insert appends one audit entry. Entries are never mutated or deleted.
	Insert(ctx context.Context, entry *models.AuditLog) error
	// Query retrieves entries matching the filter, newest first.
	Query(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}
