package outreach

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinemde/stagecoach/stageloop"
)

func TestCatalogMergesEmbeddedTools(t *testing.T) {
	catalog := Catalog(zerolog.Nop())
	require.Equal(t, 2, catalog.Len())

	specs := catalog.Specs()
	assert.Equal(t, stageloop.EndExecutionTool, specs[0].Name)
	assert.Equal(t, ProcessEmailTool, specs[1].Name)
}

func TestCatalogDescribesBothTools(t *testing.T) {
	desc := Catalog(zerolog.Nop()).Describe()
	assert.Contains(t, desc, "Tool: end_execution_loop")
	assert.Contains(t, desc, "Tool: process_email_and_label")
	assert.Contains(t, desc, "- to_addrs (array): Recipient email addresses.")
}

func TestCatalogConvertsToWireTools(t *testing.T) {
	tools := Catalog(zerolog.Nop()).OpenAITools()
	require.Len(t, tools, 2)
	for _, tool := range tools {
		assert.NotNil(t, tool.Function.Parameters)
	}
}
