package stageloop

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// FormatToolResult renders a tool result payload as pretty-printed JSON,
// truncated to maxChars characters with a marker. Truncation counts runes,
// never splitting a multi-byte character: the output is appended to a track
// and sent back to the model, so it must stay valid UTF-8. Unserializable
// payloads degrade to an explanatory string rather than failing the
// iteration.
func FormatToolResult(result any, maxChars int) string {
	formatted, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("Unable to format tool result: %s", err)
	}
	s := string(formatted)
	if maxChars > 0 && utf8.RuneCountInString(s) > maxChars {
		runes := []rune(s)
		s = string(runes[:maxChars]) + "... [truncated]"
	}
	return s
}

// formatToolTurn renders the system turn recording a completed tool call.
func formatToolTurn(name string, args map[string]any, formattedResult string) string {
	argsJSON, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		argsJSON = []byte("{}")
	}
	return fmt.Sprintf("Function called: %s\nArguments passed: %s\nResult:\n%s",
		name, argsJSON, formattedResult)
}
