package relayer

import (
	"context"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/wfstatus/internal/shared/domain"
	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

// Worker reenvía los mensajes pendientes de la tabla outbox a la cola real.
// Un mensaje que falla se queda sin procesar y se reintenta en el siguiente ciclo.
type Worker struct {
	repo      sharedDomain.OutboxRepository
	target    sharedQueue.Queue
	interval  time.Duration
	batchSize int
	log       *zap.Logger
}

func NewOutboxWorker(
	repo sharedDomain.OutboxRepository,
	target sharedQueue.Queue,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:      repo,
		target:    target,
		interval:  interval,
		batchSize: batchSize,
		log:       log,
	}
}

// Start inicia el bucle de polling del worker. Bloquea hasta que ctx se cancela.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker started",
		zap.Duration("interval", w.interval),
		zap.String("target", w.target.Name()),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker stopped")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch procesa un lote y devuelve cuántos mensajes se entregaron.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	events, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Failed to fetch pending outbox events", zap.Error(err))
		return 0
	}
	if len(events) > 0 {
		w.log.Info("📬 Outbox events to relay", zap.Int("count", len(events)))
	}

	delivered := 0
	for _, evt := range events {
		if w.publishAndMark(ctx, evt) {
			delivered++
		}
	}
	return delivered
}

func (w *Worker) publishAndMark(ctx context.Context, evt sharedDomain.OutboxEvent) bool {
	msg := sharedQueue.Message{ID: evt.AggregateID, Payload: evt.Payload}

	if err := w.target.Publish(ctx, msg, evt.Exchange, evt.EventType); err != nil {
		w.log.Warn("⚠️ Could not relay outbox event",
			zap.String("event_id", evt.ID.String()),
			zap.String("routing_key", evt.EventType),
			zap.Error(err),
		)
		return false // No lo marcamos como procesado para que se reintente
	}

	if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
		// Se volverá a enviar: los consumidores deben tolerar duplicados.
		w.log.Warn("⚠️ Could not mark outbox event as processed",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
		return true
	}

	w.log.Debug("✅ Outbox event relayed", zap.String("event_id", evt.ID.String()))
	return true
}
