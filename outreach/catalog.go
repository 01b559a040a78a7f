package outreach

import (
	_ "embed"

	"github.com/rs/zerolog"

	"github.com/martinemde/stagecoach/stageloop"
)

//go:embed base_tools.json
var baseToolsJSON []byte

//go:embed outreach_tools.json
var outreachToolsJSON []byte

// Catalog returns the merged tool catalog for outreach agents: the built-in
// exit tool plus process_email_and_label.
func Catalog(logger zerolog.Logger) *stageloop.Catalog {
	return stageloop.MergeCatalogs(
		stageloop.ParseCatalog(baseToolsJSON, logger),
		stageloop.ParseCatalog(outreachToolsJSON, logger),
	)
}
