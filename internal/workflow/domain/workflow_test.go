package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowStatus_IsTerminal(t *testing.T) {
	assert.True(t, WorkflowCompleted.IsTerminal())
	assert.True(t, WorkflowTerminated.IsTerminal())
	assert.True(t, WorkflowFailed.IsTerminal())
	assert.True(t, WorkflowTimedOut.IsTerminal())
	assert.False(t, WorkflowRunning.IsTerminal())
	assert.False(t, WorkflowPaused.IsTerminal())
}

func TestWorkflowStatus_IsSuccessful(t *testing.T) {
	assert.True(t, WorkflowCompleted.IsSuccessful())
	assert.True(t, WorkflowPaused.IsSuccessful())
	assert.False(t, WorkflowFailed.IsSuccessful())
	assert.False(t, WorkflowTerminated.IsSuccessful())
	assert.False(t, WorkflowTimedOut.IsSuccessful())
}

func TestNewSummary(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)

	wf := &Workflow{
		WorkflowID:               "wf-42",
		WorkflowName:             "order_fulfillment",
		Version:                  3,
		CorrelationID:            "order-7",
		Status:                   WorkflowCompleted,
		CreateTime:               start,
		UpdateTime:               end,
		EndTime:                  end,
		Input:                    map[string]any{"orderId": "7"},
		Output:                   map[string]any{"shipped": true},
		FailedReferenceTaskNames: []string{"ship_ref", "bill_ref"},
		FailedTaskNames:          []string{"ship", "bill", "ship"},
		Priority:                 5,
		CreatedBy:                "scheduler",
	}

	s := NewSummary(wf)

	assert.Equal(t, "order_fulfillment", s.WorkflowType)
	assert.Equal(t, 3, s.Version)
	assert.Equal(t, "wf-42", s.WorkflowID)
	assert.Equal(t, "order-7", s.CorrelationID)
	assert.Equal(t, WorkflowCompleted, s.Status)
	assert.Equal(t, "2024-03-01T10:00:00.000Z", s.StartTime)
	assert.Equal(t, "2024-03-01T10:00:01.500Z", s.EndTime)
	assert.EqualValues(t, 1500, s.ExecutionTime)
	assert.Equal(t, "ship_ref,bill_ref", s.FailedReferenceTaskNames)
	assert.Equal(t, []string{"bill", "ship"}, s.FailedTaskNames)
	assert.Equal(t, 5, s.Priority)
	assert.Equal(t, "scheduler", s.CreatedBy)
}

func TestNewSummary_UnsetTimes(t *testing.T) {
	s := NewSummary(&Workflow{WorkflowID: "wf-1", Status: WorkflowTerminated})

	assert.Empty(t, s.StartTime)
	assert.Empty(t, s.EndTime)
	assert.Zero(t, s.ExecutionTime)
	assert.Nil(t, s.FailedTaskNames)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"workflowType":"","version":0,"workflowId":"wf-1","status":"TERMINATED","executionTime":0,"priority":0}`, string(data))
}

func TestSerializationError_Unwrap(t *testing.T) {
	cause := errors.New("unsupported value")
	var err error = &SerializationError{WorkflowID: "wf-1", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "wf-1")

	var serErr *SerializationError
	require.True(t, errors.As(err, &serErr))
	assert.Equal(t, "wf-1", serErr.WorkflowID)
}

type countingListener struct {
	completed, terminated int
}

func (l *countingListener) OnWorkflowCompleted(ctx context.Context, w *Workflow) error {
	l.completed++
	return nil
}

func (l *countingListener) OnWorkflowTerminated(ctx context.Context, w *Workflow) error {
	l.terminated++
	return nil
}

func TestNotify_RespectsListenerFlag(t *testing.T) {
	l := &countingListener{}

	called, err := NotifyCompleted(context.Background(), l, &Workflow{WorkflowID: "a"})
	require.NoError(t, err)
	assert.False(t, called)

	called, err = NotifyCompleted(context.Background(), l, &Workflow{WorkflowID: "b", StatusListenerEnabled: true})
	require.NoError(t, err)
	assert.True(t, called)

	called, err = NotifyTerminated(context.Background(), l, &Workflow{WorkflowID: "c", StatusListenerEnabled: true})
	require.NoError(t, err)
	assert.True(t, called)

	assert.Equal(t, 1, l.completed)
	assert.Equal(t, 1, l.terminated)
}

func TestDestinationConstants(t *testing.T) {
	assert.Equal(t, "amqp_exchange:workflow-status-listener", QueueName)
	assert.Equal(t, "workflow-status-listener", ExchangeName)
	assert.Equal(t, "workflow.status.completed", CompletedRoutingKey)
	assert.Equal(t, "workflow.status.terminated", TerminatedRoutingKey)
}
