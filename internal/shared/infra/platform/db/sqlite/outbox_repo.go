package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"

	"github.com/davicafu/wfstatus/internal/shared/domain"
)

// OutboxRepoSQLite implementa domain.OutboxRepository.
type OutboxRepoSQLite struct {
	db *sql.DB
}

func NewOutboxRepoSQLite(db *sql.DB) *OutboxRepoSQLite {
	return &OutboxRepoSQLite{db: db}
}

// InitSchema crea la tabla outbox si no existe.
func (r *OutboxRepoSQLite) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS outbox (
			id             TEXT PRIMARY KEY,
			aggregate_type TEXT NOT NULL,
			aggregate_id   TEXT NOT NULL,
			event_type     TEXT NOT NULL,
			exchange       TEXT NOT NULL,
			payload        TEXT NOT NULL,
			created_at     DATETIME NOT NULL,
			processed      INTEGER NOT NULL DEFAULT 0
		)`); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (processed, created_at)`)
	return err
}

func (r *OutboxRepoSQLite) SaveOutbox(ctx context.Context, evt domain.OutboxEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO outbox (id,aggregate_type,aggregate_id,event_type,exchange,payload,created_at,processed)
		 VALUES (?,?,?,?,?,?,?,0)`,
		evt.ID.String(), evt.AggregateType, evt.AggregateID, evt.EventType, evt.Exchange, evt.Payload, evt.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// FetchPendingOutbox obtiene los eventos no procesados, los más antiguos primero.
func (r *OutboxRepoSQLite) FetchPendingOutbox(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, aggregate_type, aggregate_id, event_type, exchange, payload, created_at
         FROM outbox
         WHERE processed = 0
         ORDER BY created_at, rowid
         LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var evt domain.OutboxEvent
		var id string // El ID se guarda como TEXT

		if err := rows.Scan(&id, &evt.AggregateType, &evt.AggregateID, &evt.EventType, &evt.Exchange, &evt.Payload, &evt.CreatedAt); err != nil {
			return nil, err
		}

		evt.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in outbox row: %w", err)
		}

		events = append(events, evt)
	}

	return events, rows.Err()
}

// MarkOutboxProcessed marca un evento como procesado.
func (r *OutboxRepoSQLite) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE outbox SET processed = 1 WHERE id = ?`, id.String())
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
var _ domain.OutboxRepository = (*OutboxRepoSQLite)(nil)
