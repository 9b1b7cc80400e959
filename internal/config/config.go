package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort string
	LogLevel string

	// Equivale a conductor.workflow-status-listener.type
	ListenerType string
	// Backend que atiende el exchange de estados: kafka | redis | memory | outbox
	QueueBackend string

	KafkaBrokers        []string
	KafkaLifecycleTopic string
	KafkaGroupID        string
	// Cada publish escribe un único mensaje: un lote largo solo añade latencia
	KafkaBatchTimeout   time.Duration
	ConsumeLifecycle    bool

	RedisAddr string

	OutboxStore  string // sqlite | postgres | mongodb
	OutboxTarget string // kafka | redis | memory
	OutboxPeriod time.Duration
	OutboxLimit  int
	SQLitePath   string
	PostgresDSN  string
	MongoURI     string
	MongoDB      string

	ClickHouseAddr string
	ClickHouseDB   string
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	return &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ListenerType:        getEnv("WORKFLOW_STATUS_LISTENER_TYPE", "stub"),
		QueueBackend:        getEnv("STATUS_QUEUE_BACKEND", "kafka"),
		KafkaBrokers:        splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaLifecycleTopic: getEnv("KAFKA_LIFECYCLE_TOPIC", "workflow.lifecycle"),
		KafkaGroupID:        getEnv("KAFKA_GROUP_ID", "wfstatus-listener"),
		KafkaBatchTimeout:   parseDuration(getEnv("KAFKA_BATCH_TIMEOUT", "10ms"), 10*time.Millisecond),
		ConsumeLifecycle:    parseBool(getEnv("CONSUME_LIFECYCLE_EVENTS", "false")),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		OutboxStore:         getEnv("OUTBOX_STORE", "sqlite"),
		OutboxTarget:        getEnv("OUTBOX_TARGET", "kafka"),
		OutboxPeriod:        parseDuration(getEnv("OUTBOX_PERIOD", "1s"), time.Second),
		OutboxLimit:         parseInt(getEnv("OUTBOX_LIMIT", "10"), 10),
		SQLitePath:          getEnv("SQLITE_PATH", "./wfstatus_outbox.db"),
		PostgresDSN:         getEnv("POSTGRES_DSN", "postgres://localhost:5432/wfstatus?sslmode=disable"),
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:             getEnv("MONGO_DB", "wfstatus"),
		ClickHouseAddr:      getEnv("CLICKHOUSE_ADDR", ""),
		ClickHouseDB:        getEnv("CLICKHOUSE_DB", "default"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func parseInt(v string, fallback int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseDuration(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
