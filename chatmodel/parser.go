package chatmodel

import (
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
)

// ParseToolCall extracts at most one requested tool invocation from a model
// response. When the response carries no choices or no tool-call entries it
// returns ok=false. Only the first tool call is honored; additional
// simultaneous calls in one response are ignored. Arguments that fail to
// parse as a JSON object discard the call entirely (ok=false), forcing the
// caller to re-prompt rather than guess at malformed arguments.
func ParseToolCall(resp *openai.ChatCompletionResponse) (string, map[string]any, bool) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", nil, false
	}

	toolCalls := resp.Choices[0].Message.ToolCalls
	if len(toolCalls) == 0 {
		return "", nil, false
	}

	call := toolCalls[0]
	var args map[string]any
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return "", nil, false
	}

	return call.Function.Name, args, true
}

// ResponseText extracts the assistant's text content from a response, or ""
// when the response carries no choices.
func ResponseText(resp *openai.ChatCompletionResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
