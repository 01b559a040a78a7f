package mailer

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Folder names mirror the mailbox query idiom.
const (
	FolderSent   = "sent"
	FolderDrafts = "drafts"
)

// InMemory is a Client that stores everything in process memory. Safe for
// concurrent use.
type InMemory struct {
	mu       sync.Mutex
	messages []*storedMessage
}

type storedMessage struct {
	id     string
	folder string
	msg    Message
	labels []string
}

// NewInMemory creates an empty in-memory mail store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Send records the message in the sent folder.
func (m *InMemory) Send(ctx context.Context, msg Message) error {
	m.store(FolderSent, msg)
	return nil
}

// SaveDraft records the message in the drafts folder.
func (m *InMemory) SaveDraft(ctx context.Context, msg Message) error {
	m.store(FolderDrafts, msg)
	return nil
}

func (m *InMemory) store(folder string, msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, &storedMessage{
		id:     uuid.NewString(),
		folder: folder,
		msg:    msg,
	})
}

// Search supports "in:sent" / "in:drafts" folder terms and a trailing
// "subject:<text>" term matched as a substring. IDs come back newest first,
// so the most recently stored match is element zero.
func (m *InMemory) Search(ctx context.Context, query string, max int) ([]string, error) {
	folder, subject := parseQuery(query)

	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for i := len(m.messages) - 1; i >= 0; i-- {
		stored := m.messages[i]
		if folder != "" && stored.folder != folder {
			continue
		}
		if subject != "" && !strings.Contains(stored.msg.Subject, subject) {
			continue
		}
		ids = append(ids, stored.id)
		if max > 0 && len(ids) >= max {
			break
		}
	}
	return ids, nil
}

// parseQuery splits a query into its folder term and subject text. The
// subject term is last in the queries this package issues, so everything
// after "subject:" belongs to it, spaces included.
func parseQuery(query string) (folder, subject string) {
	rest := query
	if idx := strings.Index(rest, "subject:"); idx != -1 {
		subject = strings.TrimSpace(rest[idx+len("subject:"):])
		rest = rest[:idx]
	}
	for _, term := range strings.Fields(rest) {
		if strings.HasPrefix(term, "in:") {
			folder = strings.TrimPrefix(term, "in:")
		}
	}
	return folder, subject
}

// AddLabel attaches a label to a stored message.
func (m *InMemory) AddLabel(ctx context.Context, messageID, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, stored := range m.messages {
		if stored.id == messageID {
			stored.labels = append(stored.labels, label)
			return nil
		}
	}
	return errors.Errorf("message %s not found", messageID)
}

// Sent returns the messages in the sent folder, oldest first.
func (m *InMemory) Sent() []Message {
	return m.folderMessages(FolderSent)
}

// Drafts returns the messages in the drafts folder, oldest first.
func (m *InMemory) Drafts() []Message {
	return m.folderMessages(FolderDrafts)
}

func (m *InMemory) folderMessages(folder string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Message
	for _, stored := range m.messages {
		if stored.folder == folder {
			out = append(out, stored.msg)
		}
	}
	return out
}

// Labels returns the labels attached to a message ID.
func (m *InMemory) Labels(messageID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, stored := range m.messages {
		if stored.id == messageID {
			out := make([]string, len(stored.labels))
			copy(out, stored.labels)
			return out
		}
	}
	return nil
}
