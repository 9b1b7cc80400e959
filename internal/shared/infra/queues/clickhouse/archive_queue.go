package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

const QueueType = "clickhouse"

// Open abre la conexión a ClickHouse y comprueba que responde.
func Open(addr string, dbName string) (*sql.DB, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}
	return conn, nil
}

// ArchiveQueue guarda cada mensaje publicado en workflow_status_log para analítica.
// No entrega nada a consumidores: es un sumidero.
type ArchiveQueue struct {
	name string
	db   *sql.DB
	log  *zap.Logger
	now  func() time.Time
}

func NewArchiveQueue(name string, db *sql.DB, log *zap.Logger) *ArchiveQueue {
	return &ArchiveQueue{name: name, db: db, log: log, now: time.Now}
}

func (q *ArchiveQueue) Name() string { return QueueType + ":" + q.name }

func (q *ArchiveQueue) Publish(ctx context.Context, msg sharedQueue.Message, exchange, routingKey string) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO workflow_status_log (message_id, exchange, routing_key, payload, published_at) VALUES (?, ?, ?, ?, ?)",
		msg.ID, exchange, routingKey, msg.Payload, q.now().UTC(),
	)
	if err != nil {
		q.log.Error("Failed to archive status message", zap.String("id", msg.ID), zap.Error(err))
		return fmt.Errorf("failed to archive message %s: %w", msg.ID, err)
	}
	return nil
}

// CountByRoutingKey devuelve cuántos mensajes se archivaron por routing key en el rango.
func (q *ArchiveQueue) CountByRoutingKey(ctx context.Context, start, end time.Time) (map[string]int, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT routing_key, count(*) AS total
		FROM workflow_status_log
		WHERE published_at BETWEEN ? AND ?
		GROUP BY routing_key
	`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var total int
		if err := rows.Scan(&key, &total); err != nil {
			return nil, err
		}
		counts[key] = total
	}
	return counts, rows.Err()
}

// InitSchema crea la tabla en ClickHouse si no existe.
// Se particiona por mes y se ordena por routing key y fecha.
func (q *ArchiveQueue) InitSchema(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS workflow_status_log (
			message_id   String,
			exchange     String,
			routing_key  LowCardinality(String),
			payload      String,
			published_at DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(published_at)
		ORDER BY (routing_key, published_at)
	`)
	return err
}

type Provider struct {
	db  *sql.DB
	log *zap.Logger
}

func NewProvider(db *sql.DB, log *zap.Logger) *Provider {
	return &Provider{db: db, log: log}
}

func (p *Provider) QueueType() string { return QueueType }

func (p *Provider) Queue(name string) (sharedQueue.Queue, error) {
	return NewArchiveQueue(name, p.db, p.log), nil
}

// Verificación estática de la interfaz.
var _ sharedQueue.Queue = (*ArchiveQueue)(nil)
