package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/wfstatus/internal/shared/domain"
	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

const (
	QueueType     = "outbox"
	AggregateType = "workflow"
)

// OutboxQueue no habla con ningún broker: guarda el mensaje en la tabla outbox y
// el relayer se encarga de entregarlo después.
type OutboxQueue struct {
	name string
	repo sharedDomain.OutboxRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewOutboxQueue(name string, repo sharedDomain.OutboxRepository, log *zap.Logger) *OutboxQueue {
	return &OutboxQueue{name: name, repo: repo, log: log, now: time.Now}
}

func (q *OutboxQueue) Name() string { return QueueType + ":" + q.name }

func (q *OutboxQueue) Publish(ctx context.Context, msg sharedQueue.Message, exchange, routingKey string) error {
	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: AggregateType,
		AggregateID:   msg.ID,
		EventType:     routingKey,
		Exchange:      exchange,
		Payload:       msg.Payload,
		CreatedAt:     q.now().UTC(),
	}

	if err := q.repo.SaveOutbox(ctx, evt); err != nil {
		return err
	}

	q.log.Debug("Message stored in outbox",
		zap.String("event_id", evt.ID.String()),
		zap.String("aggregate_id", evt.AggregateID),
		zap.String("routing_key", routingKey),
	)
	return nil
}

type Provider struct {
	repo sharedDomain.OutboxRepository
	log  *zap.Logger
}

func NewProvider(repo sharedDomain.OutboxRepository, log *zap.Logger) *Provider {
	return &Provider{repo: repo, log: log}
}

func (p *Provider) QueueType() string { return QueueType }

func (p *Provider) Queue(name string) (sharedQueue.Queue, error) {
	return NewOutboxQueue(name, p.repo, p.log), nil
}

// Verificación estática
var _ sharedQueue.Queue = (*OutboxQueue)(nil)
