package queues

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
	"github.com/davicafu/wfstatus/tests/mocks"
)

func TestTeeQueue_CopiesToSecondaries(t *testing.T) {
	primary := mocks.NewRecordingQueue("kafka:status")
	archive := mocks.NewRecordingQueue("clickhouse:status")
	q := NewTeeQueue(zap.NewNop(), primary, archive)

	require.NoError(t, q.Publish(context.Background(), sharedQueue.Message{ID: "wf-1"}, "ex", "rk"))

	assert.Len(t, primary.Publications(), 1)
	assert.Len(t, archive.Publications(), 1)
	assert.Equal(t, "kafka:status", q.Name())
}

func TestTeeQueue_SecondaryErrorIgnored(t *testing.T) {
	primary := mocks.NewRecordingQueue("kafka:status")
	archive := mocks.NewRecordingQueue("clickhouse:status")
	archive.Err = errors.New("clickhouse down")
	q := NewTeeQueue(zap.NewNop(), primary, archive)

	assert.NoError(t, q.Publish(context.Background(), sharedQueue.Message{ID: "wf-1"}, "ex", "rk"))
	assert.Len(t, primary.Publications(), 1)
}

func TestTeeQueue_PrimaryErrorSkipsSecondaries(t *testing.T) {
	primaryErr := errors.New("broker down")
	primary := mocks.NewRecordingQueue("kafka:status")
	primary.Err = primaryErr
	archive := mocks.NewRecordingQueue("clickhouse:status")
	q := NewTeeQueue(zap.NewNop(), primary, archive)

	err := q.Publish(context.Background(), sharedQueue.Message{ID: "wf-1"}, "ex", "rk")

	assert.Same(t, primaryErr, err)
	assert.Empty(t, archive.Publications())
}
