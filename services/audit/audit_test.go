package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portflow/models"
)

type memAuditRepo struct {
	entries   []models.AuditLog
	insertErr error
}

func (r *memAuditRepo) Insert(ctx context.Context, entry *models.AuditLog) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memAuditRepo) Query(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	var out []models.AuditLog
	for _, e := range r.entries {
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func TestRecord(t *testing.T) {
	repo := &memAuditRepo{}
	recorder := &DefaultRecorder{Repo: repo}
	actor := models.Actor{Type: models.ActorUser, ID: "user-1"}

	recorder.Record(context.Background(), actor, "BOOKING", "b1", models.ActionConfirmed, "booking PF-1 confirmed")

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, models.ActorUser, entry.ActorType)
	assert.Equal(t, "user-1", entry.ActorID)
	assert.Equal(t, "BOOKING", entry.EntityType)
	assert.Equal(t, "b1", entry.EntityID)
	assert.Equal(t, models.ActionConfirmed, entry.Action)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestRecord_SwallowsRepoFailure(t *testing.T) {
	repo := &memAuditRepo{insertErr: errors.New("mongo down")}
	recorder := &DefaultRecorder{Repo: repo}

	// Must not panic or surface the failure.
	recorder.Record(context.Background(), models.SystemActor, "BOOKING", "b1", models.ActionCreated, "booking created")

	assert.Empty(t, repo.entries)
}

func TestQuery(t *testing.T) {
	repo := &memAuditRepo{}
	recorder := &DefaultRecorder{Repo: repo}
	ctx := context.Background()
	actor := models.Actor{Type: models.ActorUser, ID: "user-1"}

	recorder.Record(ctx, actor, "BOOKING", "b1", models.ActionCreated, "created")
	recorder.Record(ctx, actor, "QR_CODE", "q1", models.ActionScanned, "scanned")

	entries, err := recorder.Query(ctx, models.AuditFilter{EntityType: "QR_CODE"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionScanned, entries[0].Action)
}
