package outreach

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinemde/stagecoach/chatmodel"
	"github.com/martinemde/stagecoach/mailer"
	"github.com/martinemde/stagecoach/stageloop"
)

// draftingCaller plays a fixed two-stage script: a plan, one
// process_email_and_label call, then the exit call. It records every prompt
// it sees.
type draftingCaller struct {
	mu      sync.Mutex
	n       int
	prompts []string
}

func (c *draftingCaller) Call(ctx context.Context, turns []chatmodel.Turn, allowTools bool) (*openai.ChatCompletionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, turn := range turns {
		if turn.Role == chatmodel.RoleUser {
			c.prompts = append(c.prompts, turn.Content)
		}
	}
	c.n++
	switch c.n {
	case 1:
		return assistantText("plan: draft one email, then exit"), nil
	case 2:
		return assistantToolCall(ProcessEmailTool,
			`{"to_addrs": ["customer@example.com"], "subject": "Shades of Color - How are you doing?", "body": "<p>Hello</p>"}`), nil
	default:
		return assistantToolCall(stageloop.EndExecutionTool, `{"summary": "Draft saved and labeled."}`), nil
	}
}

func assistantText(text string) *openai.ChatCompletionResponse {
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: "assistant", Content: text},
		}},
	}
}

func assistantToolCall(name, args string) *openai.ChatCompletionResponse {
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role: "assistant",
				ToolCalls: []openai.ToolCall{{
					Type:     openai.ToolTypeFunction,
					Function: openai.FunctionCall{Name: name, Arguments: args},
				}},
			},
		}},
	}
}

func testFactory(store mailer.Client, sendMode bool, callers *[]*draftingCaller, mu *sync.Mutex) AgentFactory {
	return func() *stageloop.Agent {
		caller := &draftingCaller{}
		if callers != nil {
			mu.Lock()
			*callers = append(*callers, caller)
			mu.Unlock()
		}
		dispatcher := NewDispatcher(store, "Demo", sendMode, zerolog.Nop())
		return stageloop.NewAgent(caller, Catalog(zerolog.Nop()), dispatcher, nil)
	}
}

func TestProcessorDraftsSliceAndSkips(t *testing.T) {
	dir := t.TempDir()
	writeRecipient(t, dir, 0, map[string]any{"source_name": "Ada", "email": "ada@example.com"})
	writeRecipient(t, dir, 1, map[string]any{"source_name": "Basil", "email": "basil@example.com", "email_sent": true})
	// index 2 has no file
	writeRecipient(t, dir, 3, map[string]any{"source_name": "Cleo", "email": "cleo@example.com"})

	store := mailer.NewInMemory()
	var mu sync.Mutex
	var callers []*draftingCaller
	processor := NewProcessor(ProcessorConfig{
		Dir:    dir,
		Begin:  0,
		End:    4,
		Prompt: "Compose for: " + PromptJSONToken,
	}, testFactory(store, false, &callers, &mu), zerolog.Nop())

	require.NoError(t, processor.Run(context.Background()))

	// Ada and Cleo processed; Basil (already sent) and index 2 (missing)
	// skipped.
	assert.Len(t, callers, 2)
	assert.Len(t, store.Drafts(), 2)

	// The recipient record replaces the token in the prompt each agent sees.
	require.NotEmpty(t, callers[0].prompts)
	assert.Contains(t, callers[0].prompts[0], `"ada@example.com"`)
	assert.NotContains(t, callers[0].prompts[0], PromptJSONToken)
}

func TestProcessorSendModeMarksRecipients(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipient(t, dir, 0, map[string]any{"source_name": "Ada", "email": "ada@example.com"})

	store := mailer.NewInMemory()
	processor := NewProcessor(ProcessorConfig{
		Dir:      dir,
		Begin:    0,
		End:      1,
		Prompt:   PromptJSONToken,
		SendMode: true,
	}, testFactory(store, true, nil, nil), zerolog.Nop())

	require.NoError(t, processor.Run(context.Background()))
	assert.Len(t, store.Sent(), 1)

	reloaded, err := LoadRecipient(path)
	require.NoError(t, err)
	assert.True(t, reloaded.EmailSent())
}

func TestProcessorDraftModeDoesNotMark(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipient(t, dir, 0, map[string]any{"email": "ada@example.com"})

	store := mailer.NewInMemory()
	processor := NewProcessor(ProcessorConfig{
		Dir:    dir,
		Begin:  0,
		End:    1,
		Prompt: PromptJSONToken,
	}, testFactory(store, false, nil, nil), zerolog.Nop())

	require.NoError(t, processor.Run(context.Background()))

	reloaded, err := LoadRecipient(path)
	require.NoError(t, err)
	assert.False(t, reloaded.EmailSent())
}

func TestProcessorParallelCoversRange(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 6; i++ {
		writeRecipient(t, dir, i, map[string]any{"email": "x@example.com"})
	}

	store := mailer.NewInMemory()
	processor := NewProcessor(ProcessorConfig{
		Dir:    dir,
		Begin:  0,
		End:    6,
		Prompt: PromptJSONToken,
	}, testFactory(store, false, nil, nil), zerolog.Nop())

	require.NoError(t, processor.RunParallel(context.Background(), 3))
	assert.Len(t, store.Drafts(), 6)
}

func TestProcessorLogsAgentEvents(t *testing.T) {
	dir := t.TempDir()
	writeRecipient(t, dir, 0, map[string]any{"source_name": "Ada", "email": "ada@example.com"})

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	processor := NewProcessor(ProcessorConfig{
		Dir:    dir,
		Begin:  0,
		End:    1,
		Prompt: PromptJSONToken,
	}, testFactory(mailer.NewInMemory(), false, nil, nil), logger)

	require.NoError(t, processor.Run(context.Background()))

	// The agent's event stream is drained into the batch log, so the run
	// leaves a trace of every workflow step.
	logged := buf.String()
	assert.Contains(t, logged, string(stageloop.EventWorkflowStart))
	assert.Contains(t, logged, string(stageloop.EventToolCall))
	assert.Contains(t, logged, string(stageloop.EventWorkflowEnd))
}

func TestProcessorHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	writeRecipient(t, dir, 0, map[string]any{"email": "x@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewProcessor(ProcessorConfig{
		Dir:    dir,
		Begin:  0,
		End:    1,
		Prompt: PromptJSONToken,
	}, testFactory(mailer.NewInMemory(), false, nil, nil), zerolog.Nop())

	err := processor.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCampaignPromptCarriesToken(t *testing.T) {
	assert.True(t, strings.Contains(CampaignPrompt, PromptJSONToken))
}
