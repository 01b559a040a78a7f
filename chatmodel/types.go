package chatmodel

import (
	openai "github.com/sashabaranov/go-openai"
)

// Role identifies who produced a turn in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged unit of conversation content. Turns are immutable
// once appended to a track; ordering within a track is significant and never
// rewritten.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemTurn creates a system Turn.
func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

// UserTurn creates a user Turn.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn creates an assistant Turn.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// ConvertTurnsToMessages converts turns into OpenAI chat messages.
func ConvertTurnsToMessages(turns []Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, turn := range turns {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		}
	}
	return messages
}

// ConcatTurnContents joins the content of all turns. This is the text the
// Estimator prices for the pre-flight budget check, matching what the model
// will be asked to ingest.
func ConcatTurnContents(turns []Turn) string {
	total := 0
	for _, turn := range turns {
		total += len(turn.Content)
	}
	buf := make([]byte, 0, total)
	for _, turn := range turns {
		buf = append(buf, turn.Content...)
	}
	return string(buf)
}
