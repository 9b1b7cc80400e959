package application

import (
	"context"

	"go.uber.org/zap"

	wfDomain "github.com/davicafu/wfstatus/internal/workflow/domain"
)

// StubListener solo deja constancia en el log. Es el listener por defecto.
type StubListener struct {
	log *zap.Logger
}

func NewStubListener(log *zap.Logger) *StubListener {
	return &StubListener{log: log}
}

func (l *StubListener) OnWorkflowCompleted(ctx context.Context, w *wfDomain.Workflow) error {
	l.log.Debug("Workflow completed", zap.String("workflow_id", w.WorkflowID))
	return nil
}

func (l *StubListener) OnWorkflowTerminated(ctx context.Context, w *wfDomain.Workflow) error {
	l.log.Debug("Workflow terminated", zap.String("workflow_id", w.WorkflowID))
	return nil
}

var _ wfDomain.StatusListener = (*StubListener)(nil)
