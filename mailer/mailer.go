// Package mailer defines the mail-transport boundary used by outreach
// workflows: sending, drafting, searching, and labeling messages. The
// package ships an in-memory implementation for tests and dry runs; real
// transports plug in behind Client.
package mailer

import "context"

// Message is one outbound email. Attachments are file paths; validating
// them is the transport's concern.
type Message struct {
	To          []string
	Subject     string
	Body        string
	Attachments []string
}

// Client is the transport contract. Search takes a query in the mailbox
// query idiom ("in:sent subject:..."), returns matching message IDs newest
// first, capped at max when max > 0. AddLabel creates the label on first
// use.
type Client interface {
	Send(ctx context.Context, msg Message) error
	SaveDraft(ctx context.Context, msg Message) error
	Search(ctx context.Context, query string, max int) ([]string, error)
	AddLabel(ctx context.Context, messageID, label string) error
}
