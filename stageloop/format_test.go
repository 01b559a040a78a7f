package stageloop

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatToolResultPrettyPrints(t *testing.T) {
	result := map[string]any{"status": "sent", "id": "abc"}
	got := FormatToolResult(result, 1000)
	if !strings.Contains(got, "\"status\": \"sent\"") {
		t.Errorf("expected indented JSON, got:\n%s", got)
	}
}

func TestFormatToolResultTruncates(t *testing.T) {
	result := map[string]any{"blob": strings.Repeat("x", 5000)}
	got := FormatToolResult(result, 1000)
	if !strings.HasSuffix(got, "... [truncated]") {
		t.Error("expected truncation marker")
	}
	if len(got) != 1000+len("... [truncated]") {
		t.Errorf("expected 1000 chars plus marker, got %d", len(got))
	}
}

func TestFormatToolResultTruncatesOnRuneBoundary(t *testing.T) {
	// Multi-byte content crossing the ceiling must not be cut mid-rune;
	// the result goes back into the conversation and must stay valid UTF-8.
	result := map[string]any{"body": strings.Repeat("é", 1200)}
	got := FormatToolResult(result, 1000)
	if !utf8.ValidString(got) {
		t.Fatal("truncated output is not valid UTF-8")
	}
	if !strings.HasSuffix(got, "... [truncated]") {
		t.Error("expected truncation marker")
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "... [truncated]")); n != 1000 {
		t.Errorf("expected 1000 characters before the marker, got %d", n)
	}
}

func TestFormatToolResultNil(t *testing.T) {
	if got := FormatToolResult(nil, 1000); got != "null" {
		t.Errorf("expected null, got %q", got)
	}
}

func TestFormatToolResultUnserializable(t *testing.T) {
	got := FormatToolResult(map[string]any{"ch": make(chan int)}, 1000)
	if !strings.HasPrefix(got, "Unable to format tool result:") {
		t.Errorf("expected graceful degradation, got %q", got)
	}
}

func TestFormatToolTurn(t *testing.T) {
	got := formatToolTurn("send_message", map[string]any{"body": "hi"}, "{\n  \"ok\": true\n}")
	if !strings.HasPrefix(got, "Function called: send_message\nArguments passed: {") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "\nResult:\n{") {
		t.Errorf("result section missing:\n%s", got)
	}
}
