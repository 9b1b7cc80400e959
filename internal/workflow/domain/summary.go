package domain

import (
	"sort"
	"strings"
	"time"
)

const summaryTimeLayout = "2006-01-02T15:04:05.000Z"

// Summary es la proyección reducida de un Workflow que viaja como payload.
type Summary struct {
	WorkflowType                     string         `json:"workflowType"`
	Version                          int            `json:"version"`
	WorkflowID                       string         `json:"workflowId"`
	CorrelationID                    string         `json:"correlationId,omitempty"`
	StartTime                        string         `json:"startTime,omitempty"`
	UpdateTime                       string         `json:"updateTime,omitempty"`
	EndTime                          string         `json:"endTime,omitempty"`
	Status                           WorkflowStatus `json:"status"`
	Input                            map[string]any `json:"input,omitempty"`
	Output                           map[string]any `json:"output,omitempty"`
	ReasonForIncompletion            string         `json:"reasonForIncompletion,omitempty"`
	ExecutionTime                    int64          `json:"executionTime"`
	Event                            string         `json:"event,omitempty"`
	FailedReferenceTaskNames         string         `json:"failedReferenceTaskNames,omitempty"`
	FailedTaskNames                  []string       `json:"failedTaskNames,omitempty"`
	ExternalInputPayloadStoragePath  string         `json:"externalInputPayloadStoragePath,omitempty"`
	ExternalOutputPayloadStoragePath string         `json:"externalOutputPayloadStoragePath,omitempty"`
	Priority                         int            `json:"priority"`
	CreatedBy                        string         `json:"createdBy,omitempty"`
}

// NewSummary deriva el resumen a partir de la foto del workflow.
func NewSummary(w *Workflow) Summary {
	s := Summary{
		WorkflowType:                     w.WorkflowName,
		Version:                          w.Version,
		WorkflowID:                       w.WorkflowID,
		CorrelationID:                    w.CorrelationID,
		StartTime:                        formatTime(w.CreateTime),
		UpdateTime:                       formatTime(w.UpdateTime),
		EndTime:                          formatTime(w.EndTime),
		Status:                           w.Status,
		Input:                            w.Input,
		Output:                           w.Output,
		ReasonForIncompletion:            w.ReasonForIncompletion,
		Event:                            w.Event,
		ExternalInputPayloadStoragePath:  w.ExternalInputPayloadStoragePath,
		ExternalOutputPayloadStoragePath: w.ExternalOutputPayloadStoragePath,
		Priority:                         w.Priority,
		CreatedBy:                        w.CreatedBy,
	}

	if !w.CreateTime.IsZero() && !w.EndTime.IsZero() {
		s.ExecutionTime = w.EndTime.Sub(w.CreateTime).Milliseconds()
	}

	if len(w.FailedReferenceTaskNames) > 0 {
		s.FailedReferenceTaskNames = strings.Join(w.FailedReferenceTaskNames, ",")
	}

	if len(w.FailedTaskNames) > 0 {
		// Es un conjunto: orden estable y sin duplicados
		seen := make(map[string]struct{}, len(w.FailedTaskNames))
		for _, n := range w.FailedTaskNames {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			s.FailedTaskNames = append(s.FailedTaskNames, n)
		}
		sort.Strings(s.FailedTaskNames)
	}

	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(summaryTimeLayout)
}

