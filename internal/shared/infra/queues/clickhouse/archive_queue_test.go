package clickhouse

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

// Las sentencias de la cola son SQL estándar, así que se prueban contra SQLite.
func setupArchiveDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE workflow_status_log (
			message_id   TEXT,
			exchange     TEXT,
			routing_key  TEXT,
			payload      TEXT,
			published_at DATETIME
		)
	`)
	require.NoError(t, err)
	return db
}

func TestArchiveQueue_PublishAndCount(t *testing.T) {
	ctx := context.Background()
	db := setupArchiveDB(t)

	fixed := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	q := NewArchiveQueue("workflow-status-listener", db, zap.NewNop())
	q.now = func() time.Time { return fixed }

	require.NoError(t, q.Publish(ctx, sharedQueue.Message{ID: "wf-1", Payload: "{}"}, "workflow-status-listener", "workflow.status.completed"))
	require.NoError(t, q.Publish(ctx, sharedQueue.Message{ID: "wf-2", Payload: "{}"}, "workflow-status-listener", "workflow.status.completed"))
	require.NoError(t, q.Publish(ctx, sharedQueue.Message{ID: "wf-3", Payload: "{}"}, "workflow-status-listener", "workflow.status.terminated"))

	var payload, exchange string
	require.NoError(t, db.QueryRow(`SELECT payload, exchange FROM workflow_status_log WHERE message_id = ?`, "wf-3").Scan(&payload, &exchange))
	assert.Equal(t, "{}", payload)
	assert.Equal(t, "workflow-status-listener", exchange)

	counts, err := q.CountByRoutingKey(ctx, fixed.Add(-time.Hour), fixed.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"workflow.status.completed":  2,
		"workflow.status.terminated": 1,
	}, counts)

	counts, err = q.CountByRoutingKey(ctx, fixed.Add(time.Hour), fixed.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.Equal(t, "clickhouse:workflow-status-listener", q.Name())
}

func TestArchiveQueue_PublishError(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	// Sin tabla
	q := NewArchiveQueue("status", db, zap.NewNop())
	err = q.Publish(context.Background(), sharedQueue.Message{ID: "wf-1"}, "x", "k")
	assert.ErrorContains(t, err, "wf-1")
}
