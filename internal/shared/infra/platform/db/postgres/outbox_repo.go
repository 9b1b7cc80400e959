package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	sharedDomain "github.com/davicafu/wfstatus/internal/shared/domain"
)

// OutboxRepoPostgres implementa la interfaz sharedDomain.OutboxRepository.
type OutboxRepoPostgres struct {
	db *sql.DB
}

// Open abre un pool usando el driver "pgx".
func Open(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewOutboxRepoPostgres(db *sql.DB) *OutboxRepoPostgres {
	return &OutboxRepoPostgres{db: db}
}

func (r *OutboxRepoPostgres) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS outbox (
			id             UUID PRIMARY KEY,
			aggregate_type TEXT NOT NULL,
			aggregate_id   TEXT NOT NULL,
			event_type     TEXT NOT NULL,
			exchange       TEXT NOT NULL,
			payload        JSONB NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL,
			processed      BOOLEAN NOT NULL DEFAULT false
		)`); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (created_at) WHERE processed = false`)
	return err
}

func (r *OutboxRepoPostgres) SaveOutbox(ctx context.Context, evt sharedDomain.OutboxEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, exchange, payload, created_at, processed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, false)`,
		evt.ID, evt.AggregateType, evt.AggregateID, evt.EventType, evt.Exchange, []byte(evt.Payload), evt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// FetchPendingOutbox obtiene los eventos no procesados de la tabla outbox para Postgres.
func (r *OutboxRepoPostgres) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, aggregate_type, aggregate_id, event_type, exchange, payload, created_at
		 FROM outbox WHERE processed=false ORDER BY created_at LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []sharedDomain.OutboxEvent
	for rows.Next() {
		var evt sharedDomain.OutboxEvent
		var payloadBytes []byte // El payload se lee como JSONB

		if err := rows.Scan(&evt.ID, &evt.AggregateType, &evt.AggregateID, &evt.EventType, &evt.Exchange, &payloadBytes, &evt.CreatedAt); err != nil {
			return nil, err
		}
		evt.Payload = string(payloadBytes)

		events = append(events, evt)
	}

	return events, rows.Err()
}

// MarkOutboxProcessed marca un evento como procesado para Postgres.
func (r *OutboxRepoPostgres) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE outbox SET processed=true WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ sharedDomain.OutboxRepository = (*OutboxRepoPostgres)(nil)
