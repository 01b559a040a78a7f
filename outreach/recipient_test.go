package outreach

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecipient(t *testing.T, dir string, index int, fields map[string]any) string {
	t.Helper()
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	path := filepath.Join(dir, fmt.Sprintf("customer_%d.json", index))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadRecipientFields(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipient(t, dir, 0, map[string]any{
		"source_name": "Ada's Books",
		"email":       "ada@example.com",
		"contact":     "Ada",
		"Address 1":   "12 Reading Ln",
	})

	r, err := LoadRecipient(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada's Books", r.SourceName())
	assert.Equal(t, "ada@example.com", r.Email())
	assert.False(t, r.EmailSent())

	// Every field survives into the prompt payload.
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.JSON()), &decoded))
	assert.Equal(t, "Ada", decoded["contact"])
	assert.Equal(t, "12 Reading Ln", decoded["Address 1"])
}

func TestRecipientDefaults(t *testing.T) {
	r := NewRecipient(map[string]any{})
	assert.Equal(t, "UNKNOWN", r.SourceName())
	assert.Equal(t, "UNKNOWN", r.Email())
	assert.False(t, r.EmailSent())
}

func TestMarkSentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipient(t, dir, 1, map[string]any{
		"source_name": "Basil Goods",
		"email":       "basil@example.com",
	})

	r, err := LoadRecipient(path)
	require.NoError(t, err)
	r.MarkSent()
	require.NoError(t, r.Save(path))

	reloaded, err := LoadRecipient(path)
	require.NoError(t, err)
	assert.True(t, reloaded.EmailSent())
	assert.Equal(t, "Basil Goods", reloaded.SourceName())
}

func TestLoadRecipientBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customer_2.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err := LoadRecipient(path)
	assert.Error(t, err)
}
