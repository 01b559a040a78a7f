package outreach

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Recipient is one dormant-customer record, stored as an individual JSON
// file so slices of the database can be processed without global locking.
// All fields beyond the ones this package reads are preserved verbatim for
// prompt injection.
type Recipient struct {
	fields map[string]any
}

// LoadRecipient reads a recipient record from path.
func LoadRecipient(path string) (*Recipient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading recipient %s", path)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrapf(err, "decoding recipient %s", path)
	}
	return &Recipient{fields: fields}, nil
}

// NewRecipient builds a record from decoded fields. Used by tests and
// importers.
func NewRecipient(fields map[string]any) *Recipient {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Recipient{fields: fields}
}

// SourceName returns the record's source_name field, or "UNKNOWN".
func (r *Recipient) SourceName() string {
	if s, ok := r.fields["source_name"].(string); ok && s != "" {
		return s
	}
	return "UNKNOWN"
}

// Email returns the record's email field, or "UNKNOWN".
func (r *Recipient) Email() string {
	if s, ok := r.fields["email"].(string); ok && s != "" {
		return s
	}
	return "UNKNOWN"
}

// EmailSent reports whether this recipient has already been processed.
func (r *Recipient) EmailSent() bool {
	sent, _ := r.fields["email_sent"].(bool)
	return sent
}

// MarkSent records that an email went out to this recipient.
func (r *Recipient) MarkSent() {
	r.fields["email_sent"] = true
}

// JSON renders the full record for prompt injection.
func (r *Recipient) JSON() string {
	data, err := json.Marshal(r.fields)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Save writes the record back to path.
func (r *Recipient) Save(path string) error {
	data, err := json.MarshalIndent(r.fields, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encoding recipient")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing recipient %s", path)
	}
	return nil
}
