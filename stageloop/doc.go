// Package stageloop implements a disciplined two-stage agent workflow: a
// tool-free deliberation stage that produces a plan, followed by a
// tool-enabled execution loop that acts on it until the model explicitly
// calls end_execution_loop.
//
// # Architecture
//
// The package is organized around these core concepts:
//
//   - Track: an append-only conversation log scoped to one stage. Each agent
//     owns two independent tracks (deliberation, execution); a turn appended
//     to one is invisible to the other. The execution stage receives only a
//     summary of the plan as a plain string, never the deliberation track.
//   - Catalog: an immutable set of tool specifications loaded at agent
//     construction, rendered into a human-readable description for the
//     planning stage and converted to the wire format for the execution
//     stage.
//   - ToolDispatcher: the polymorphic capability a specialization implements
//     to handle its own tool names. Unrecognized names become error payloads
//     recorded into the track, never fatal failures.
//   - Agent: the stage controller. It owns the iteration, exit-confirmation,
//     and token-error counters for a single invocation and enforces the
//     budget warning-and-retry protocol around every model call.
//
// # Quick Start
//
//	gw := chatmodel.NewGateway(client, estimator, catalog.OpenAITools(),
//	    chatmodel.DefaultGatewayConfig("gpt-4o-mini"))
//	agent := stageloop.NewAgent(gw, catalog, dispatcher, nil)
//	defer agent.Close()
//
//	summary, err := agent.ProcessUserInput(ctx, "send a two-line greeting")
package stageloop
