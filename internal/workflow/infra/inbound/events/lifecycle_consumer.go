package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	wfDomain "github.com/davicafu/wfstatus/internal/workflow/domain"
)

const defaultHandleTimeout = 5 * time.Second

// LifecycleConsumer traduce los eventos de ciclo de vida del motor en llamadas
// al StatusListener.
type LifecycleConsumer struct {
	listener wfDomain.StatusListener
	timeout  time.Duration
	log      *zap.Logger
}

func NewLifecycleConsumer(listener wfDomain.StatusListener, timeout time.Duration, log *zap.Logger) *LifecycleConsumer {
	if timeout <= 0 {
		timeout = defaultHandleTimeout
	}
	return &LifecycleConsumer{listener: listener, timeout: timeout, log: log}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *LifecycleConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var evt wfDomain.LifecycleEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		c.log.Warn("Failed to unmarshal lifecycle event", zap.String("key", key), zap.Error(err))
		return
	}
	if evt.Workflow == nil || evt.Workflow.WorkflowID == "" {
		c.log.Warn("Lifecycle event without workflow", zap.String("key", key), zap.String("type", evt.Type))
		return
	}

	var notify func(context.Context, wfDomain.StatusListener, *wfDomain.Workflow) (bool, error)
	switch evt.Type {
	case wfDomain.WorkflowCompletedEvent:
		notify = wfDomain.NotifyCompleted
	case wfDomain.WorkflowTerminatedEvent:
		notify = wfDomain.NotifyTerminated
	default:
		c.log.Debug("Ignoring lifecycle event", zap.String("type", evt.Type), zap.String("key", key))
		return
	}

	// Un estado vacío se da por bueno: el motor no siempre lo envía
	if status := evt.Workflow.Status; status != "" {
		if !status.IsTerminal() {
			c.log.Warn("Ignoring lifecycle event for non-terminal workflow",
				zap.String("workflow_id", evt.Workflow.WorkflowID),
				zap.String("type", evt.Type),
				zap.String("status", string(status)),
			)
			return
		}
		if evt.Type == wfDomain.WorkflowCompletedEvent && !status.IsSuccessful() {
			c.log.Warn("Completed event with unsuccessful workflow status",
				zap.String("workflow_id", evt.Workflow.WorkflowID),
				zap.String("status", string(status)),
			)
		}
	}

	ctxEvt, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	published, err := notify(ctxEvt, c.listener, evt.Workflow)
	if err != nil {
		c.log.Error("Failed to notify workflow status",
			zap.String("workflow_id", evt.Workflow.WorkflowID),
			zap.String("type", evt.Type),
			zap.Error(err),
		)
		return
	}
	if !published {
		c.log.Debug("Status listener disabled for workflow", zap.String("workflow_id", evt.Workflow.WorkflowID))
	}
}
