package chatmodel

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultTokenCeiling is the pre-flight budget: a conversation estimated
// above this is never sent to the model.
const DefaultTokenCeiling = 13000

// ChatCompleter is the slice of the OpenAI client the Gateway needs.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GatewayConfig holds Gateway construction parameters.
type GatewayConfig struct {
	Model        string
	TokenCeiling int // 0 = DefaultTokenCeiling
	Retry        RetryPolicy
}

// DefaultGatewayConfig returns the reference configuration.
func DefaultGatewayConfig(model string) GatewayConfig {
	return GatewayConfig{
		Model:        model,
		TokenCeiling: DefaultTokenCeiling,
		Retry:        DefaultRetryPolicy(),
	}
}

// Gateway wraps a single call to a chat-completion model. It offers a fixed
// catalog of callable tools, guards every call with a token-budget estimate,
// and accumulates reported usage into a running session total.
//
// The Gateway never mutates the conversation it is given.
type Gateway struct {
	client    ChatCompleter
	estimator Estimator
	config    GatewayConfig
	tools     []openai.Tool

	mu          sync.Mutex
	totalTokens int
}

// NewGateway creates a Gateway. The tool catalog is fixed for the life of the
// gateway; pass nil for a tool-less gateway.
func NewGateway(client ChatCompleter, estimator Estimator, tools []openai.Tool, config GatewayConfig) *Gateway {
	if config.TokenCeiling <= 0 {
		config.TokenCeiling = DefaultTokenCeiling
	}
	return &Gateway{
		client:    client,
		estimator: estimator,
		config:    config,
		tools:     tools,
	}
}

// Call issues one chat-completion request carrying the full conversation and,
// if allowTools, the tool catalog. If the estimated token count of the
// conversation exceeds the ceiling, the call is aborted before any network
// request and a *BudgetExceededError is returned.
func (g *Gateway) Call(ctx context.Context, turns []Turn, allowTools bool) (*openai.ChatCompletionResponse, error) {
	estimated := g.estimator.Estimate(ConcatTurnContents(turns))
	if estimated > g.config.TokenCeiling {
		return nil, &BudgetExceededError{Estimated: estimated, Ceiling: g.config.TokenCeiling}
	}

	req := openai.ChatCompletionRequest{
		Model:    g.config.Model,
		Messages: ConvertTurnsToMessages(turns),
	}
	if allowTools && len(g.tools) > 0 {
		req.Tools = g.tools
	}

	resp, err := retry(ctx, g.config.Retry, func(ctx context.Context) (openai.ChatCompletionResponse, error) {
		return g.client.CreateChatCompletion(ctx, req)
	})
	if err != nil {
		return nil, errors.Wrap(err, "chat completion")
	}

	g.mu.Lock()
	g.totalTokens += resp.Usage.TotalTokens
	g.mu.Unlock()

	return &resp, nil
}

// TotalTokens returns the running total of reported token usage for this
// gateway's lifetime. Observability only; it does not affect control flow.
func (g *Gateway) TotalTokens() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.totalTokens
}

// TokenCeiling returns the configured pre-flight budget.
func (g *Gateway) TokenCeiling() int {
	return g.config.TokenCeiling
}
