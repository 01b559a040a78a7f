package stageloop

import "context"

// EndExecutionTool is the built-in exit tool every agent understands. Calling
// it is the only sanctioned way for the model to leave the execution loop.
const EndExecutionTool = "end_execution_loop"

// NoSummaryPlaceholder is recorded when the exit tool is called without a
// usable summary argument.
const NoSummaryPlaceholder = "No summary provided by end_execution_loop."

// ToolDispatcher executes domain tools on behalf of an agent. Dispatch
// returns the tool's result payload and whether the name was recognized.
// An unrecognized name is not an error condition; the agent records an
// error payload into the track and the loop continues.
//
// Dispatch is never invoked for EndExecutionTool; the agent intercepts it.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]any) (any, bool)
}

// NopDispatcher recognizes no tools. Agents built on the base catalog alone
// use it so every domain tool call surfaces as an unrecognized-tool payload.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (any, bool) {
	return nil, false
}
