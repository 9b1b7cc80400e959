package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/wfstatus/internal/shared/domain"
)

func setupTestDB(t *testing.T) *OutboxRepoSQLite {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// :memory: es por conexión
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewOutboxRepoSQLite(db)
	require.NoError(t, repo.InitSchema(context.Background()))
	return repo
}

func TestOutboxRepoSQLite_SaveFetchMark(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	first := domain.OutboxEvent{
		ID: uuid.New(), AggregateType: "workflow", AggregateID: "wf-1",
		EventType: "workflow.status.completed", Exchange: "workflow-status-listener",
		Payload: `{"workflowId":"wf-1"}`, CreatedAt: base,
	}
	second := domain.OutboxEvent{
		ID: uuid.New(), AggregateType: "workflow", AggregateID: "wf-2",
		EventType: "workflow.status.terminated", Exchange: "workflow-status-listener",
		Payload: `{"workflowId":"wf-2"}`, CreatedAt: base.Add(time.Minute),
	}
	require.NoError(t, repo.SaveOutbox(ctx, second))
	require.NoError(t, repo.SaveOutbox(ctx, first))

	pending, err := repo.FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, "wf-1", pending[0].AggregateID)
	assert.Equal(t, "workflow.status.completed", pending[0].EventType)
	assert.Equal(t, "workflow-status-listener", pending[0].Exchange)
	assert.Equal(t, first.Payload, pending[0].Payload)
	assert.True(t, base.Equal(pending[0].CreatedAt))

	limited, err := repo.FetchPendingOutbox(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, repo.MarkOutboxProcessed(ctx, first.ID))

	pending, err = repo.FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestOutboxRepoSQLite_MarkUnknown(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.MarkOutboxProcessed(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "outbox event not found")
}
