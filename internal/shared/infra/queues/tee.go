package queues

import (
	"context"

	"go.uber.org/zap"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

// TeeQueue publica en la cola principal y, si tuvo éxito, copia el mensaje en
// las secundarias. Solo el error de la principal llega al llamador.
type TeeQueue struct {
	primary     sharedQueue.Queue
	secondaries []sharedQueue.Queue
	log         *zap.Logger
}

func NewTeeQueue(log *zap.Logger, primary sharedQueue.Queue, secondaries ...sharedQueue.Queue) *TeeQueue {
	return &TeeQueue{primary: primary, secondaries: secondaries, log: log}
}

func (q *TeeQueue) Name() string { return q.primary.Name() }

func (q *TeeQueue) Publish(ctx context.Context, msg sharedQueue.Message, exchange, routingKey string) error {
	if err := q.primary.Publish(ctx, msg, exchange, routingKey); err != nil {
		return err
	}
	for _, s := range q.secondaries {
		if err := s.Publish(ctx, msg, exchange, routingKey); err != nil {
			q.log.Warn("Secondary queue publish failed",
				zap.String("queue", s.Name()),
				zap.String("id", msg.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

var _ sharedQueue.Queue = (*TeeQueue)(nil)
