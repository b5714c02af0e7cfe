package audit

import (
	"context"

	"portflow/models"
)

// Recorder appends an immutable trail entry for every state transition.
// Recording is best-effort observability: a failed append never fails the
// operation that triggered it.
type Recorder interface {
	Record(ctx context.Context, actor models.Actor, entityType, entityID, action, description string)
	Query(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}
