package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMissingWorkflowID   = errors.New("workflow id is required")
	ErrUnknownListenerType = errors.New("unknown workflow status listener type")
)

// SerializationError indica que el resumen no pudo convertirse a texto.
// Es fatal para ese evento: no se publica nada.
type SerializationError struct {
	WorkflowID string
	Err        error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize summary of workflow %s: %v", e.WorkflowID, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// --- Listener de estados terminales ---
type StatusListener interface {
	OnWorkflowCompleted(ctx context.Context, w *Workflow) error
	OnWorkflowTerminated(ctx context.Context, w *Workflow) error
}

// NotifyCompleted invoca al listener solo si el workflow lo tiene habilitado.
// Devuelve si el listener fue llamado.
func NotifyCompleted(ctx context.Context, l StatusListener, w *Workflow) (bool, error) {
	if !w.StatusListenerEnabled {
		return false, nil
	}
	return true, l.OnWorkflowCompleted(ctx, w)
}

func NotifyTerminated(ctx context.Context, l StatusListener, w *Workflow) (bool, error) {
	if !w.StatusListenerEnabled {
		return false, nil
	}
	return true, l.OnWorkflowTerminated(ctx, w)
}

// LifecycleEvent es el sobre con el que el motor anuncia una transición.
type LifecycleEvent struct {
	Type     string    `json:"type"`
	Workflow *Workflow `json:"workflow"`
}
