package chatmodel

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func responseWithToolCalls(calls ...openai.ToolCall) *openai.ChatCompletionResponse {
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role:      "assistant",
				ToolCalls: calls,
			}},
		},
	}
}

func toolCall(name, arguments string) openai.ToolCall {
	return openai.ToolCall{
		Type:     openai.ToolTypeFunction,
		Function: openai.FunctionCall{Name: name, Arguments: arguments},
	}
}

func TestParseToolCallNoChoices(t *testing.T) {
	name, args, ok := ParseToolCall(&openai.ChatCompletionResponse{})
	if ok {
		t.Fatalf("expected no call, got %q with %v", name, args)
	}
}

func TestParseToolCallNil(t *testing.T) {
	if _, _, ok := ParseToolCall(nil); ok {
		t.Fatal("expected no call for nil response")
	}
}

func TestParseToolCallNoToolCalls(t *testing.T) {
	resp := &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "just text"}},
		},
	}
	if _, _, ok := ParseToolCall(resp); ok {
		t.Fatal("expected no call for text-only response")
	}
}

func TestParseToolCallFirstWins(t *testing.T) {
	resp := responseWithToolCalls(
		toolCall("first_tool", `{"a": 1}`),
		toolCall("second_tool", `{"b": 2}`),
	)
	name, args, ok := ParseToolCall(resp)
	if !ok {
		t.Fatal("expected a call")
	}
	if name != "first_tool" {
		t.Errorf("expected first_tool, got %q", name)
	}
	if v, ok := args["a"].(float64); !ok || v != 1 {
		t.Errorf("expected a=1, got %v", args["a"])
	}
	if _, present := args["b"]; present {
		t.Error("second call's arguments leaked into the parse result")
	}
}

func TestParseToolCallMalformedArguments(t *testing.T) {
	resp := responseWithToolCalls(toolCall("broken", `{"a": `))
	if name, _, ok := ParseToolCall(resp); ok {
		t.Fatalf("malformed arguments must be treated as no call, got %q", name)
	}
}

func TestResponseText(t *testing.T) {
	resp := &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "the plan"}},
		},
	}
	if got := ResponseText(resp); got != "the plan" {
		t.Errorf("expected %q, got %q", "the plan", got)
	}
	if got := ResponseText(&openai.ChatCompletionResponse{}); got != "" {
		t.Errorf("expected empty text for empty response, got %q", got)
	}
}
