package stageloop

import (
	"sync"
	"time"
)

// EventKind identifies the type of workflow event.
type EventKind string

const (
	EventWorkflowStart     EventKind = "workflow_start"
	EventWorkflowEnd       EventKind = "workflow_end"
	EventStageStart        EventKind = "stage_start"
	EventStageEnd          EventKind = "stage_end"
	EventPlanProduced      EventKind = "plan_produced"
	EventIterationStart    EventKind = "iteration_start"
	EventToolCall          EventKind = "tool_call"
	EventToolResult        EventKind = "tool_result"
	EventExitRequested     EventKind = "exit_requested"
	EventExitConfirmed     EventKind = "exit_confirmed"
	EventTokenWarning      EventKind = "token_warning"
	EventForcedTermination EventKind = "forced_termination"
	EventWarning           EventKind = "warning"
	EventError             EventKind = "error"
)

// WorkflowEvent is a typed event emitted by the agent workflow.
type WorkflowEvent struct {
	Kind      EventKind      `json:"kind"`
	Timestamp time.Time      `json:"timestamp"`
	AgentID   string         `json:"agent_id"`
	Data      map[string]any `json:"data,omitempty"`
}

// EventEmitter delivers typed events to the host application via a channel.
type EventEmitter struct {
	agentID string
	ch      chan WorkflowEvent
	closed  bool
	mu      sync.Mutex
}

// NewEventEmitter creates a new EventEmitter with a buffered channel.
func NewEventEmitter(agentID string, bufferSize int) *EventEmitter {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &EventEmitter{
		agentID: agentID,
		ch:      make(chan WorkflowEvent, bufferSize),
	}
}

// Emit sends an event to the channel. If the emitter is closed, the event
// is silently dropped.
func (e *EventEmitter) Emit(kind EventKind, data map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	event := WorkflowEvent{
		Kind:      kind,
		Timestamp: time.Now(),
		AgentID:   e.agentID,
		Data:      data,
	}
	select {
	case e.ch <- event:
	default:
		// Channel full; drop event to avoid blocking the workflow.
	}
}

// Events returns the read-only event channel.
func (e *EventEmitter) Events() <-chan WorkflowEvent {
	return e.ch
}

// Close closes the event channel. Safe to call multiple times.
func (e *EventEmitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}
