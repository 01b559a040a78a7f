package outreach

import (
	"github.com/rs/zerolog"

	"github.com/martinemde/stagecoach/chatmodel"
	"github.com/martinemde/stagecoach/mailer"
	"github.com/martinemde/stagecoach/stageloop"
)

// AgentOptions bundles the collaborators of one outreach agent.
type AgentOptions struct {
	// Completer issues chat completions; *openai.Client in production.
	Completer chatmodel.ChatCompleter

	// Estimator prices prompts before they reach the model.
	Estimator chatmodel.Estimator

	// Mail is the transport the dispatcher writes to.
	Mail mailer.Client

	// Model names the chat model, e.g. "gpt-4o-mini".
	Model string

	// Label is attached to every processed email.
	Label string

	// SendMode sends immediately instead of drafting.
	SendMode bool

	// Config overrides the loop defaults when non-nil.
	Config *stageloop.AgentConfig

	Logger zerolog.Logger
}

// NewAgent assembles a fresh outreach agent: merged tool catalog, guarded
// gateway, mail dispatcher, and persona. Each agent serves exactly one task
// attempt; the batch processor builds one per recipient.
func NewAgent(opts AgentOptions) *stageloop.Agent {
	catalog := Catalog(opts.Logger)

	gatewayConfig := chatmodel.DefaultGatewayConfig(opts.Model)
	gateway := chatmodel.NewGateway(opts.Completer, opts.Estimator, catalog.OpenAITools(), gatewayConfig)

	dispatcher := NewDispatcher(opts.Mail, opts.Label, opts.SendMode, opts.Logger)

	config := stageloop.DefaultAgentConfig()
	if opts.Config != nil {
		config = *opts.Config
	}
	// The options logger always wins so loop logging follows the batch
	// logger even when a config override is supplied.
	config.Logger = opts.Logger

	agent := stageloop.NewAgent(gateway, catalog, dispatcher, &config)
	agent.AddPersona(Persona)
	return agent
}
