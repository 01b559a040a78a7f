package stageloop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/martinemde/stagecoach/chatmodel"
)

// ModelCaller is the model access an agent needs: one guarded chat
// completion call over a turn sequence. *chatmodel.Gateway satisfies it.
type ModelCaller interface {
	Call(ctx context.Context, turns []chatmodel.Turn, allowTools bool) (*openai.ChatCompletionResponse, error)
}

// AgentConfig holds the tunable knobs of the stage controller.
type AgentConfig struct {
	// MaxIterations caps the execution loop. When reached without an
	// accepted exit, the loop terminates with a recorded notice.
	MaxIterations int

	// FinalChecks is the number of exit confirmations demanded before an
	// end_execution_loop call is accepted. Zero accepts the first call.
	FinalChecks int

	// MaxRetries bounds consecutive token-budget failures before the run
	// aborts with a RetriesExhaustedError. The counter resets on any
	// successful model call.
	MaxRetries int

	// ResultMaxChars truncates formatted tool results recorded into the
	// execution track.
	ResultMaxChars int

	// RecoverIterationErrors, when true, records a model-call failure into
	// the execution track and continues instead of aborting the run.
	// Budget-retry exhaustion is always fatal.
	RecoverIterationErrors bool

	// EventBufferSize sizes the emitter channel.
	EventBufferSize int

	Logger zerolog.Logger
}

// DefaultAgentConfig returns the reference configuration.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		MaxIterations:          99,
		FinalChecks:            0,
		MaxRetries:             5,
		ResultMaxChars:         1000,
		RecoverIterationErrors: false,
		EventBufferSize:        256,
		Logger:                 zerolog.Nop(),
	}
}

// Agent drives one two-stage workflow: a tool-free deliberation call that
// produces a plan, then a tool-enabled execution loop over that plan. Each
// stage owns its own track; the plan crosses between them as a plain string.
//
// An Agent is single-flight: ProcessUserInput holds the agent lock for the
// whole workflow. Run concurrent workflows with separate agents.
type Agent struct {
	mu sync.Mutex

	id         string
	caller     ModelCaller
	catalog    *Catalog
	dispatcher ToolDispatcher
	config     AgentConfig
	logger     zerolog.Logger
	emitter    *EventEmitter

	deliberation *Track
	execution    *Track
}

// NewAgent creates an agent over a model caller, a tool catalog, and a
// dispatcher. A nil config uses DefaultAgentConfig; a nil dispatcher
// recognizes no tools.
func NewAgent(caller ModelCaller, catalog *Catalog, dispatcher ToolDispatcher, config *AgentConfig) *Agent {
	cfg := DefaultAgentConfig()
	if config != nil {
		cfg = *config
	}
	if catalog == nil {
		catalog = NewCatalog()
	}
	if dispatcher == nil {
		dispatcher = NopDispatcher{}
	}
	id := uuid.NewString()
	return &Agent{
		id:           id,
		caller:       caller,
		catalog:      catalog,
		dispatcher:   dispatcher,
		config:       cfg,
		logger:       cfg.Logger.With().Str("agent_id", id).Logger(),
		emitter:      NewEventEmitter(id, cfg.EventBufferSize),
		deliberation: NewTrack(StageDeliberation, BaseInstruction),
		execution:    NewTrack(StageExecution, BaseInstruction),
	}
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() string { return a.id }

// Events returns the agent's event channel.
func (a *Agent) Events() <-chan WorkflowEvent { return a.emitter.Events() }

// Close releases the agent's event channel. Safe to call multiple times.
func (a *Agent) Close() { a.emitter.Close() }

// DeliberationTrack exposes the deliberation track for inspection.
func (a *Agent) DeliberationTrack() *Track { return a.deliberation }

// ExecutionTrack exposes the execution track for inspection.
func (a *Agent) ExecutionTrack() *Track { return a.execution }

// AddPersona appends a specialization prompt as a system turn to both
// tracks. Call before ProcessUserInput.
func (a *Agent) AddPersona(content string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deliberation.AppendSystem(content)
	a.execution.AppendSystem(content)
}

// runState carries the mutable counters of one workflow invocation.
type runState struct {
	userInput   string
	tokenErrors int
}

// ProcessUserInput runs the full two-stage workflow for one user request and
// returns the execution summary. A run that hits the iteration ceiling
// without an accepted exit returns an empty summary and no error; the forced
// termination is recorded in the execution track.
func (a *Agent) ProcessUserInput(ctx context.Context, userInput string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.emitter.Emit(EventWorkflowStart, map[string]any{"input": userInput})
	a.logger.Info().Msg("workflow started")

	state := &runState{userInput: userInput}

	plan, err := a.deliberate(ctx, state)
	if err != nil {
		a.emitter.Emit(EventError, map[string]any{"stage": string(StageDeliberation), "error": err.Error()})
		return "", err
	}

	summary, err := a.executePlan(ctx, state, plan)
	if err != nil {
		a.emitter.Emit(EventError, map[string]any{"stage": string(StageExecution), "error": err.Error()})
		return "", err
	}

	a.emitter.Emit(EventWorkflowEnd, map[string]any{"summary": summary})
	a.logger.Info().Msg("workflow finished")
	return summary, nil
}

// deliberate runs the tool-free planning stage and returns the plan text.
func (a *Agent) deliberate(ctx context.Context, state *runState) (string, error) {
	a.emitter.Emit(EventStageStart, map[string]any{"stage": string(StageDeliberation)})

	a.deliberation.AppendSystem(DeliberationInstruction)
	a.deliberation.AppendUser(state.userInput)
	a.deliberation.AppendSystem(a.catalog.Describe())

	resp, err := a.callModel(ctx, a.deliberation, false, state)
	if err != nil {
		return "", err
	}

	plan := chatmodel.ResponseText(resp)
	a.deliberation.AppendAssistant(plan)

	a.logger.Info().Int("plan_chars", len(plan)).Msg("plan produced")
	a.emitter.Emit(EventPlanProduced, map[string]any{"plan": plan})
	a.emitter.Emit(EventStageEnd, map[string]any{"stage": string(StageDeliberation)})
	return plan, nil
}

// executePlan runs the tool-enabled loop until the model's exit call is
// accepted or the iteration ceiling is reached.
func (a *Agent) executePlan(ctx context.Context, state *runState, plan string) (string, error) {
	a.emitter.Emit(EventStageStart, map[string]any{"stage": string(StageExecution)})

	a.execution.AppendSystem(ExecutionInstruction)
	a.execution.AppendUser(state.userInput)
	a.execution.AppendSystem("Deliberation Plan: " + plan)

	iterations := 0
	exitAttempts := 0
	summary := ""
	exited := false

	for iterations < a.config.MaxIterations {
		a.emitter.Emit(EventIterationStart, map[string]any{"iteration": iterations + 1})
		a.logger.Debug().Int("iteration", iterations+1).Msg("execution iteration")

		resp, err := a.callModel(ctx, a.execution, true, state)
		if err != nil {
			if a.config.RecoverIterationErrors && !isFatal(err) {
				a.logger.Warn().Err(err).Msg("iteration error, continuing")
				a.execution.AppendSystem(fmt.Sprintf(
					"Error encountered: %s. Execution will continue if possible.", err))
				iterations++
				continue
			}
			return "", err
		}

		name, args, ok := chatmodel.ParseToolCall(resp)
		if !ok {
			a.logger.Warn().Msg("no tool call in execution response")
			a.emitter.Emit(EventWarning, map[string]any{"reason": "missing_tool_call"})
			a.execution.AppendSystem(MissingToolCallWarning)
			iterations++
			continue
		}

		if name == EndExecutionTool {
			summary = exitSummary(args)
			a.execution.AppendAssistant("[end_execution_loop] Summary: " + summary)
			a.emitter.Emit(EventExitRequested, map[string]any{"summary": summary, "attempt": exitAttempts})

			if exitAttempts < a.config.FinalChecks {
				a.execution.AppendSystem(confirmationPrompt(exitAttempts))
				exitAttempts++
				iterations++
				continue
			}
			exited = true
			a.emitter.Emit(EventExitConfirmed, map[string]any{"summary": summary})
			break
		}

		a.emitter.Emit(EventToolCall, map[string]any{"tool": name, "args": args})
		a.logger.Info().Str("tool", name).Msg("dispatching tool call")

		result, handled := a.dispatcher.Dispatch(ctx, name, args)
		if !handled {
			a.logger.Warn().Str("tool", name).Msg("unrecognized tool")
			result = map[string]any{"error": fmt.Sprintf("Tool %s not recognized.", name)}
		}

		formatted := FormatToolResult(result, a.config.ResultMaxChars)
		a.execution.AppendSystem(formatToolTurn(name, args, formatted))
		a.emitter.Emit(EventToolResult, map[string]any{"tool": name})

		iterations++
	}

	if !exited {
		a.logger.Warn().Int("max_iterations", a.config.MaxIterations).Msg("iteration ceiling reached")
		a.execution.AppendSystem(ForcedTerminationNotice)
		a.emitter.Emit(EventForcedTermination, map[string]any{"iterations": iterations})
	}

	a.emitter.Emit(EventStageEnd, map[string]any{"stage": string(StageExecution)})
	return summary, nil
}

// callModel calls the model over the track, applying the budget
// warning-and-retry protocol: each budget rejection appends a warning turn
// and retries, until MaxRetries consecutive failures abort the run. Any
// success resets the failure counter.
func (a *Agent) callModel(ctx context.Context, track *Track, allowTools bool, state *runState) (*openai.ChatCompletionResponse, error) {
	for {
		resp, err := a.caller.Call(ctx, track.Turns(), allowTools)
		if err == nil {
			state.tokenErrors = 0
			return resp, nil
		}
		if !chatmodel.IsBudgetExceeded(err) {
			return nil, err
		}

		state.tokenErrors++
		a.logger.Warn().Int("consecutive", state.tokenErrors).Err(err).Msg("token budget exceeded")
		a.emitter.Emit(EventTokenWarning, map[string]any{"consecutive": state.tokenErrors})

		if state.tokenErrors >= a.config.MaxRetries {
			return nil, &chatmodel.RetriesExhaustedError{Attempts: state.tokenErrors, Cause: err}
		}
		track.AppendSystem(TokenWarning)
	}
}

// exitSummary extracts the summary argument of an exit call, substituting
// the placeholder when absent or empty.
func exitSummary(args map[string]any) string {
	if s, ok := args["summary"].(string); ok && s != "" {
		return s
	}
	return NoSummaryPlaceholder
}

// confirmationPrompt renders the exit-confirmation challenge.
func confirmationPrompt(attempt int) string {
	return fmt.Sprintf(
		"Confirmation Needed: This is your attempt %d to end the Execution Loop. "+
			"Are you positive this is the final answer? If so, submit a final `end_execution_loop` call. "+
			"If not, please continue working to finalize the task.\n"+
			"HINT: If you have a tool to check your progress, use it!", attempt)
}

// isFatal reports whether an error must abort the run even under
// RecoverIterationErrors.
func isFatal(err error) bool {
	var exhausted *chatmodel.RetriesExhaustedError
	return errors.As(err, &exhausted)
}
