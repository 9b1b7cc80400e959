package domain

import (
	"time"
)

type WorkflowStatus string

const (
	WorkflowRunning    WorkflowStatus = "RUNNING"
	WorkflowCompleted  WorkflowStatus = "COMPLETED"
	WorkflowFailed     WorkflowStatus = "FAILED"
	WorkflowTimedOut   WorkflowStatus = "TIMED_OUT"
	WorkflowTerminated WorkflowStatus = "TERMINATED"
	WorkflowPaused     WorkflowStatus = "PAUSED"
)

// IsTerminal indica si desde este estado ya no hay progreso posible.
func (s WorkflowStatus) IsTerminal() bool {
	switch s {
	case WorkflowCompleted, WorkflowFailed, WorkflowTimedOut, WorkflowTerminated:
		return true
	}
	return false
}

func (s WorkflowStatus) IsSuccessful() bool {
	return s == WorkflowCompleted || s == WorkflowPaused
}

// Workflow es la foto de una instancia de workflow tal como la entrega el motor.
// El publisher solo la lee.
type Workflow struct {
	WorkflowID                       string         `json:"workflowId"`
	WorkflowName                     string         `json:"workflowName"`
	Version                          int            `json:"version"`
	CorrelationID                    string         `json:"correlationId,omitempty"`
	Status                           WorkflowStatus `json:"status"`
	CreateTime                       time.Time      `json:"createTime"`
	UpdateTime                       time.Time      `json:"updateTime"`
	EndTime                          time.Time      `json:"endTime"`
	Input                            map[string]any `json:"input,omitempty"`
	Output                           map[string]any `json:"output,omitempty"`
	ReasonForIncompletion            string         `json:"reasonForIncompletion,omitempty"`
	Event                            string         `json:"event,omitempty"`
	FailedReferenceTaskNames         []string       `json:"failedReferenceTaskNames,omitempty"`
	FailedTaskNames                  []string       `json:"failedTaskNames,omitempty"`
	ExternalInputPayloadStoragePath  string         `json:"externalInputPayloadStoragePath,omitempty"`
	ExternalOutputPayloadStoragePath string         `json:"externalOutputPayloadStoragePath,omitempty"`
	Priority                         int            `json:"priority"`
	CreatedBy                        string         `json:"createdBy,omitempty"`
	StatusListenerEnabled            bool           `json:"workflowStatusListenerEnabled"`
}
