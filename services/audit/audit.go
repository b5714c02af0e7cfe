package audit

import (
	"context"
	"time"

	auditRepo "portflow/database/repository/audit"
	"portflow/models"
	"portflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultRecorder implements Recorder on top of the audit repository.
type DefaultRecorder struct {
	Repo auditRepo.AuditRepository
}

// Record appends one entry. Persistence failures are logged and swallowed so
// audit trouble cannot roll back the business transition it describes.
func (r *DefaultRecorder) Record(ctx context.Context, actor models.Actor, entityType, entityID, action, description string) {
	entry := &models.AuditLog{
		ID:          uuid.New().String(),
		ActorType:   actor.Type,
		ActorID:     actor.ID,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := r.Repo.Insert(ctx, entry); err != nil {
		utils.GetLogger().Warn("audit append failed",
			zap.String("entityType", entityType),
			zap.String("entityId", entityID),
			zap.String("action", action),
			zap.Error(err))
	}
}

// Query returns matching entries, newest first.
func (r *DefaultRecorder) Query(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	return r.Repo.Query(ctx, filter)
}
