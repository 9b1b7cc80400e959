package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("WORKFLOW_STATUS_LISTENER_TYPE", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("OUTBOX_PERIOD", "")
	t.Setenv("KAFKA_BATCH_TIMEOUT", "")

	cfg := LoadConfig()

	assert.Equal(t, "stub", cfg.ListenerType)
	assert.Equal(t, "kafka", cfg.QueueBackend)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Second, cfg.OutboxPeriod)
	assert.Equal(t, 10*time.Millisecond, cfg.KafkaBatchTimeout)
	assert.Equal(t, 10, cfg.OutboxLimit)
	assert.False(t, cfg.ConsumeLifecycle)
	assert.Empty(t, cfg.ClickHouseAddr)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("WORKFLOW_STATUS_LISTENER_TYPE", "event_queue_publisher")
	t.Setenv("STATUS_QUEUE_BACKEND", "outbox")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("OUTBOX_PERIOD", "250ms")
	t.Setenv("KAFKA_BATCH_TIMEOUT", "50ms")
	t.Setenv("OUTBOX_LIMIT", "not-a-number")
	t.Setenv("CONSUME_LIFECYCLE_EVENTS", "true")

	cfg := LoadConfig()

	assert.Equal(t, "event_queue_publisher", cfg.ListenerType)
	assert.Equal(t, "outbox", cfg.QueueBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 250*time.Millisecond, cfg.OutboxPeriod)
	assert.Equal(t, 50*time.Millisecond, cfg.KafkaBatchTimeout)
	assert.Equal(t, 10, cfg.OutboxLimit)
	assert.True(t, cfg.ConsumeLifecycle)
}
