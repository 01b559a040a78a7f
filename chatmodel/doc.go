// Package chatmodel wraps the OpenAI chat-completions API behind a Gateway
// that enforces a pre-flight token budget on every call.
//
// The package owns the three leaf concerns of the staged agent workflow:
//
//   - Estimator: deterministic token estimation (tiktoken cl100k_base) used
//     to price a conversation before it is sent anywhere.
//   - Gateway: a single blocking model call, optionally carrying a fixed
//     tool catalog, guarded by the token ceiling and accumulating the
//     session's reported usage.
//   - ParseToolCall: extraction of at most one tool invocation from a
//     response. Additional simultaneous calls are ignored; the workflow is
//     strictly one tool call per model turn.
//
// The Gateway never mutates the conversation it is given and never retries
// on its own except for transient provider errors when a RetryPolicy is
// configured. The budget warning-and-retry protocol lives in the caller
// (stageloop), because it works by appending turns to the conversation.
package chatmodel
