package outreach

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/martinemde/stagecoach/stageloop"
)

// AgentFactory builds a fresh agent for one recipient. Agents are never
// reused: each carries the conversation state of exactly one task attempt.
type AgentFactory func() *stageloop.Agent

// ProcessorConfig describes one batch run over a recipient directory.
type ProcessorConfig struct {
	// Dir holds per-recipient files named customer_<i>.json.
	Dir string

	// Begin and End bound the slice [Begin, End).
	Begin int
	End   int

	// Prompt is the campaign template; PromptJSONToken is replaced with
	// each recipient's record.
	Prompt string

	// SendMode marks records email_sent after a successful run.
	SendMode bool
}

// Processor drives the campaign over a recipient slice: load record, skip
// already-sent, personalize the prompt, run one agent, write back.
type Processor struct {
	config  ProcessorConfig
	factory AgentFactory
	logger  zerolog.Logger
}

// NewProcessor creates a processor over config using factory for agents.
func NewProcessor(config ProcessorConfig, factory AgentFactory, logger zerolog.Logger) *Processor {
	return &Processor{
		config:  config,
		factory: factory,
		logger:  logger,
	}
}

// Run processes the configured slice sequentially. Per-recipient failures
// are logged and skipped; only context cancellation aborts the run.
func (p *Processor) Run(ctx context.Context) error {
	p.logger.Info().Int("begin", p.config.Begin).Int("end", p.config.End).Msg("starting email outreach")
	if err := p.processSlice(ctx, p.config.Begin, p.config.End); err != nil {
		return err
	}
	p.logger.Info().Msg("email outreach completed")
	return nil
}

// RunParallel splits the configured range into contiguous slices processed
// concurrently, one goroutine per slice.
func (p *Processor) RunParallel(ctx context.Context, workers int) error {
	if workers <= 1 {
		return p.Run(ctx)
	}
	total := p.config.End - p.config.Begin
	if total <= 0 {
		return nil
	}
	if workers > total {
		workers = total
	}

	p.logger.Info().Int("workers", workers).Int("begin", p.config.Begin).Int("end", p.config.End).
		Msg("starting parallel email outreach")

	g, gctx := errgroup.WithContext(ctx)
	chunk := (total + workers - 1) / workers
	for begin := p.config.Begin; begin < p.config.End; begin += chunk {
		end := begin + chunk
		if end > p.config.End {
			end = p.config.End
		}
		begin, end := begin, end
		g.Go(func() error {
			return p.processSlice(gctx, begin, end)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	p.logger.Info().Msg("parallel email outreach completed")
	return nil
}

func (p *Processor) processSlice(ctx context.Context, begin, end int) error {
	for i := begin; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.processRecipient(ctx, i)
	}
	return nil
}

// processRecipient handles one index. Missing files, unreadable records,
// already-sent recipients, and agent failures all log and return; the batch
// keeps going.
func (p *Processor) processRecipient(ctx context.Context, index int) {
	path := filepath.Join(p.config.Dir, fmt.Sprintf("customer_%d.json", index))
	logger := p.logger.With().Int("index", index).Logger()

	if _, err := os.Stat(path); err != nil {
		logger.Info().Str("path", path).Msg("no recipient file, skipping")
		return
	}

	recipient, err := LoadRecipient(path)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load recipient")
		return
	}

	if recipient.EmailSent() {
		logger.Info().Msg("already marked email_sent, skipping")
		return
	}

	logger.Info().Str("name", recipient.SourceName()).Str("email", recipient.Email()).Msg("processing recipient")

	prompt := strings.ReplaceAll(p.config.Prompt, PromptJSONToken, recipient.JSON())

	agent := p.factory()
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range agent.Events() {
			logEvent(logger, ev)
		}
	}()

	summary, err := agent.ProcessUserInput(ctx, prompt)
	agent.Close()
	<-drained
	if err != nil {
		logger.Error().Err(err).Msg("agent run failed")
		return
	}
	logger.Info().Str("summary", summary).Msg("recipient processed")

	if p.config.SendMode {
		recipient.MarkSent()
		if err := recipient.Save(path); err != nil {
			logger.Error().Err(err).Msg("failed to save recipient updates")
			return
		}
		logger.Info().Msg("updated email_sent")
	}
}

// logEvent forwards one workflow event into the batch log.
func logEvent(logger zerolog.Logger, ev stageloop.WorkflowEvent) {
	var entry *zerolog.Event
	switch ev.Kind {
	case stageloop.EventError:
		entry = logger.Error()
	case stageloop.EventWarning, stageloop.EventTokenWarning, stageloop.EventForcedTermination:
		entry = logger.Warn()
	default:
		entry = logger.Debug()
	}
	entry.Str("agent_id", ev.AgentID).Fields(ev.Data).Msg(string(ev.Kind))
}
