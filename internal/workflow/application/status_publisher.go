package application

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
	wfDomain "github.com/davicafu/wfstatus/internal/workflow/domain"
)

// StatusPublisher publica un resumen del workflow en la cola de estados cada vez
// que un workflow termina (completado o terminado).
// No guarda estado entre llamadas: es seguro invocarlo desde varias goroutines.
type StatusPublisher struct {
	queues  sharedQueue.Registry
	log     *zap.Logger
	marshal func(v any) ([]byte, error)
}

// NewStatusPublisher es el constructor.
func NewStatusPublisher(queues sharedQueue.Registry, log *zap.Logger) *StatusPublisher {
	return &StatusPublisher{
		queues:  queues,
		log:     log,
		marshal: json.Marshal,
	}
}

func (p *StatusPublisher) OnWorkflowCompleted(ctx context.Context, w *wfDomain.Workflow) error {
	q, err := p.queues.Resolve(wfDomain.QueueName)
	if err != nil {
		return err
	}

	p.log.Info("Publishing callback of workflow on completion", zap.String("workflow_id", w.WorkflowID))
	return p.publish(ctx, q, w, wfDomain.CompletedRoutingKey)
}

func (p *StatusPublisher) OnWorkflowTerminated(ctx context.Context, w *wfDomain.Workflow) error {
	q, err := p.queues.Resolve(wfDomain.QueueName)
	if err != nil {
		return err
	}

	p.log.Info("Publishing callback of workflow on termination", zap.String("workflow_id", w.WorkflowID))
	return p.publish(ctx, q, w, wfDomain.TerminatedRoutingKey)
}

func (p *StatusPublisher) publish(ctx context.Context, q sharedQueue.Queue, w *wfDomain.Workflow, routingKey string) error {
	msg, err := p.workflowToMessage(w)
	if err != nil {
		return err
	}
	// Los errores de transporte se devuelven tal cual, sin reintentos.
	return q.Publish(ctx, msg, wfDomain.ExchangeName, routingKey)
}

func (p *StatusPublisher) workflowToMessage(w *wfDomain.Workflow) (sharedQueue.Message, error) {
	if w.WorkflowID == "" {
		return sharedQueue.Message{}, wfDomain.ErrMissingWorkflowID
	}

	summary := wfDomain.NewSummary(w)
	data, err := p.marshal(summary)
	if err != nil {
		p.log.Error("Failed to convert workflow summary to string",
			zap.String("workflow_id", w.WorkflowID),
			zap.Any("summary", summary),
			zap.Error(err),
		)
		return sharedQueue.Message{}, &wfDomain.SerializationError{WorkflowID: w.WorkflowID, Err: err}
	}

	return sharedQueue.Message{ID: w.WorkflowID, Payload: string(data)}, nil
}

// Verificación estática
var _ wfDomain.StatusListener = (*StatusPublisher)(nil)
