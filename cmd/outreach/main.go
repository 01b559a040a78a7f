// Command outreach runs the dormant-customer email campaign: one two-stage
// agent per recipient file, drafting (or sending) a personalized email and
// labeling it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/martinemde/stagecoach/chatmodel"
	"github.com/martinemde/stagecoach/mailer"
	"github.com/martinemde/stagecoach/outreach"
	"github.com/martinemde/stagecoach/stageloop"
)

type options struct {
	recipientsDir string
	begin         int
	end           int
	workers       int
	label         string
	send          bool
	model         string
	promptFile    string
	verbose       bool
}

func main() {
	opts := options{}

	root := &cobra.Command{
		Use:   "outreach",
		Short: "Run the dormant-customer email outreach campaign",
		Long: "Processes recipient files customer_<i>.json in [begin, end), running one\n" +
			"agent per recipient. Drafts by default; --send sends immediately and\n" +
			"marks records email_sent. Sending requires a real mail transport.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.recipientsDir, "recipients", "outreach/dormant_customers", "directory of recipient JSON files")
	flags.IntVar(&opts.begin, "begin", 0, "first recipient index (inclusive)")
	flags.IntVar(&opts.end, "end", 0, "last recipient index (exclusive)")
	flags.IntVar(&opts.workers, "workers", 1, "parallel slice workers")
	flags.StringVar(&opts.label, "label", "default_label", "label applied to processed emails")
	flags.BoolVar(&opts.send, "send", false, "send emails immediately instead of saving drafts (requires a real mail transport)")
	flags.StringVar(&opts.model, "model", "gpt-4o-mini", "chat model name")
	flags.StringVar(&opts.promptFile, "prompt", "", "campaign prompt file (defaults to the built-in campaign)")
	flags.BoolVar(&opts.verbose, "verbose", false, "debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if opts.verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if opts.end <= opts.begin {
		return fmt.Errorf("--end must be greater than --begin")
	}
	// Only the in-memory draft store is wired; sending would mark records
	// email_sent while the messages die with the process.
	if opts.send {
		return fmt.Errorf("--send requires a real mail transport; only the in-memory draft store is currently available")
	}

	prompt := outreach.CampaignPrompt
	if opts.promptFile != "" {
		data, err := os.ReadFile(opts.promptFile)
		if err != nil {
			return fmt.Errorf("reading prompt file: %w", err)
		}
		prompt = string(data)
	}

	estimator, err := chatmodel.NewTiktokenEstimator(chatmodel.DefaultEncoding)
	if err != nil {
		return err
	}

	client := openai.NewClient(apiKey)
	mail := mailer.NewInMemory() // TODO: wire the real transport once credentials handling lands

	factory := func() *stageloop.Agent {
		return outreach.NewAgent(outreach.AgentOptions{
			Completer: client,
			Estimator: estimator,
			Mail:      mail,
			Model:     opts.model,
			Label:     opts.label,
			SendMode:  opts.send,
			Logger:    logger,
		})
	}

	processor := outreach.NewProcessor(outreach.ProcessorConfig{
		Dir:      opts.recipientsDir,
		Begin:    opts.begin,
		End:      opts.end,
		Prompt:   prompt,
		SendMode: opts.send,
	}, factory, logger)

	return processor.RunParallel(ctx, opts.workers)
}
