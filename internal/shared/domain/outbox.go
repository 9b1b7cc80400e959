package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent representa un mensaje pendiente de publicar en el broker.
type OutboxEvent struct {
	ID            uuid.UUID `json:"id"`
	AggregateType string    `json:"aggregate_type"` // ej. "workflow"
	AggregateID   string    `json:"aggregate_id"`   // id del mensaje (workflow id)
	EventType     string    `json:"event_type"`     // routing key, ej. "workflow.status.completed"
	Exchange      string    `json:"exchange"`
	Payload       string    `json:"payload"` // ya serializado
	CreatedAt     time.Time `json:"created_at"`
	Processed     bool      `json:"processed"` // si ya se publicó
}

// OutboxRepository define el contrato para acceder a la tabla outbox.
type OutboxRepository interface {
	SaveOutbox(ctx context.Context, evt OutboxEvent) error
	FetchPendingOutbox(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error
}
