// Package outreach specializes the two-stage agent for a minimal,
// railroaded email workflow: compose one email per dormant customer, send it
// or save it as a draft, and label it for retrieval. The batch processor
// runs one fresh agent per recipient over a slice of per-file JSON records.
package outreach

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/martinemde/stagecoach/mailer"
)

// ProcessEmailTool is the single domain tool outreach agents can call.
const ProcessEmailTool = "process_email_and_label"

// Dispatcher handles process_email_and_label against a mail client. In send
// mode the email goes out immediately; otherwise it is saved as a draft.
// Either way the resulting message is labeled for retrieval.
type Dispatcher struct {
	client   mailer.Client
	label    string
	sendMode bool
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher labeling processed mail with label.
func NewDispatcher(client mailer.Client, label string, sendMode bool, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		client:   client,
		label:    label,
		sendMode: sendMode,
		logger:   logger,
	}
}

// Dispatch implements stageloop.ToolDispatcher.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (any, bool) {
	if name != ProcessEmailTool {
		return nil, false
	}
	return d.processEmailAndLabel(ctx, args), true
}

// processEmailAndLabel validates the arguments, sends or drafts the email,
// locates the resulting message, and labels it. Every failure comes back as
// an error payload the loop records and continues past.
func (d *Dispatcher) processEmailAndLabel(ctx context.Context, args map[string]any) map[string]any {
	toAddrs := stringSlice(args["to_addrs"])
	subject, _ := args["subject"].(string)
	body, _ := args["body"].(string)

	attachments := stringSlice(args["attachment_paths"])
	// Older plans pass a single attachment_path.
	if attachments == nil {
		if single, ok := args["attachment_path"].(string); ok && single != "" {
			attachments = []string{single}
		}
	}

	if len(toAddrs) == 0 || subject == "" || body == "" {
		d.logger.Error().Msg("process_email_and_label aborted: missing to_addrs, subject, or body")
		return map[string]any{
			"error": "process_email_and_label aborted: 'to_addrs', 'subject', and 'body' are all required parameters.",
		}
	}

	msg := mailer.Message{
		To:          toAddrs,
		Subject:     subject,
		Body:        body,
		Attachments: attachments,
	}

	var query, status string
	if d.sendMode {
		d.logger.Debug().Msg("send mode; sending email immediately")
		if err := d.client.Send(ctx, msg); err != nil {
			d.logger.Error().Err(err).Msg("failed to send email")
			return map[string]any{"error": "Failed to send email."}
		}
		query = "in:sent subject:" + subject
		status = "Email sent and labeled successfully."
	} else {
		d.logger.Debug().Msg("draft mode; saving draft email")
		if err := d.client.SaveDraft(ctx, msg); err != nil {
			d.logger.Error().Err(err).Msg("failed to save draft")
			return map[string]any{"error": "Failed to save draft."}
		}
		query = "in:drafts subject:" + subject
		status = "Draft saved and labeled successfully."
	}

	ids, err := d.client.Search(ctx, query, 1)
	if err != nil || len(ids) == 0 {
		d.logger.Error().Err(err).Str("query", query).Msg("failed to locate processed email")
		if d.sendMode {
			return map[string]any{"error": "Failed to locate the sent email for labeling."}
		}
		return map[string]any{"error": "Failed to locate the saved draft for labeling."}
	}

	if err := d.client.AddLabel(ctx, ids[0], d.label); err != nil {
		d.logger.Error().Err(err).Str("message_id", ids[0]).Msg("failed to label email")
		return map[string]any{"error": fmt.Sprintf("Failed to label message: %s", err)}
	}

	d.logger.Debug().Str("message_id", ids[0]).Str("label", d.label).Msg("email processed and labeled")
	return map[string]any{"status": status}
}

// stringSlice converts a decoded JSON array into []string, ignoring
// non-string elements. Returns nil when v is not an array.
func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
