package stageloop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// ParamSpec describes one argument of a tool.
type ParamSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ToolSpec describes one callable tool. Parameters holds the full JSON schema
// as loaded, passed through verbatim to the model API; Properties is the
// parsed argument map used for the human-readable rendering, and
// PropertyOrder records the argument names in descriptor declaration order.
type ToolSpec struct {
	Name          string
	Description   string
	Parameters    json.RawMessage
	Properties    map[string]ParamSpec
	PropertyOrder []string
}

// Catalog is an immutable set of tool specifications. It is loaded once at
// agent construction and never changes for the life of an agent instance.
type Catalog struct {
	specs []ToolSpec
}

// NewCatalog builds a catalog from specs.
func NewCatalog(specs ...ToolSpec) *Catalog {
	out := make([]ToolSpec, len(specs))
	copy(out, specs)
	return &Catalog{specs: out}
}

// MergeCatalogs returns a new catalog containing the specs of all inputs, in
// order.
func MergeCatalogs(catalogs ...*Catalog) *Catalog {
	merged := &Catalog{}
	for _, c := range catalogs {
		if c != nil {
			merged.specs = append(merged.specs, c.specs...)
		}
	}
	return merged
}

// Specs returns a copy of the catalog's tool specifications.
func (c *Catalog) Specs() []ToolSpec {
	out := make([]ToolSpec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Len returns the number of tools in the catalog.
func (c *Catalog) Len() int { return len(c.specs) }

// toolDescriptor mirrors the on-disk descriptor shape: a function-typed tool
// wrapping name, description, and a JSON-schema parameters block.
type toolDescriptor struct {
	Type     string `json:"type"`
	Function struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Parameters  json.RawMessage `json:"parameters"`
	} `json:"function"`
}

// ParseCatalog parses tool descriptors from JSON. The source may be a
// top-level array of descriptors or a {"tools": [...]} wrapper. Malformed
// input degrades to an empty catalog with a logged warning; it never fails,
// so agent construction cannot crash on a bad tool file.
func ParseCatalog(data []byte, logger zerolog.Logger) *Catalog {
	var descriptors []toolDescriptor

	if err := json.Unmarshal(data, &descriptors); err != nil {
		var wrapper struct {
			Tools []toolDescriptor `json:"tools"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil || wrapper.Tools == nil {
			logger.Warn().Msg("invalid tool catalog: expected a top-level list or a {\"tools\": [...]} wrapper")
			return &Catalog{}
		}
		descriptors = wrapper.Tools
	}

	specs := make([]ToolSpec, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Function.Name == "" {
			logger.Warn().Msg("skipping tool descriptor with no function name")
			continue
		}
		spec := ToolSpec{
			Name:        d.Function.Name,
			Description: d.Function.Description,
			Parameters:  d.Function.Parameters,
		}
		if len(d.Function.Parameters) > 0 {
			var schema struct {
				Properties json.RawMessage `json:"properties"`
			}
			if err := json.Unmarshal(d.Function.Parameters, &schema); err != nil {
				logger.Warn().Str("tool", spec.Name).Err(err).Msg("unparseable parameters schema")
			} else if len(schema.Properties) > 0 {
				if err := json.Unmarshal(schema.Properties, &spec.Properties); err != nil {
					logger.Warn().Str("tool", spec.Name).Err(err).Msg("unparseable parameters schema")
				} else {
					spec.PropertyOrder = propertyNames(schema.Properties)
				}
			}
		}
		specs = append(specs, spec)
	}

	return &Catalog{specs: specs}
}

// propertyNames extracts the top-level keys of a JSON object in declaration
// order, which map unmarshaling discards. Nested objects and arrays are
// skipped over by depth counting.
func propertyNames(raw json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var names []string
	depth := 0
	key := true
	for {
		tok, err := dec.Token()
		if err != nil {
			return names
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				if depth == 0 {
					return names
				}
				depth--
				if depth == 0 {
					key = true
				}
			}
			continue
		}
		if depth > 0 {
			continue
		}
		if key {
			if name, ok := tok.(string); ok {
				names = append(names, name)
			}
			key = false
		} else {
			key = true
		}
	}
}

// LoadCatalog reads tool descriptors from a JSON file. A missing or
// unreadable file degrades to an empty catalog, logged.
func LoadCatalog(path string, logger zerolog.Logger) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error().Str("path", path).Err(err).Msg("tool catalog file not loaded")
		return &Catalog{}
	}
	return ParseCatalog(data, logger)
}

// Describe renders the catalog as the human-readable block injected into the
// deliberation track, so the model can plan around real tool shapes without
// being able to invoke them.
func (c *Catalog) Describe() string {
	blocks := make([]string, 0, len(c.specs))
	for _, spec := range c.specs {
		description := spec.Description
		if description == "" {
			description = "No description available."
		}

		// Parameters render in descriptor declaration order; specs built
		// without one fall back to a stable sort.
		names := spec.PropertyOrder
		if len(names) == 0 {
			names = make([]string, 0, len(spec.Properties))
			for name := range spec.Properties {
				names = append(names, name)
			}
			sort.Strings(names)
		}

		params := make([]string, 0, len(names))
		for _, name := range names {
			p := spec.Properties[name]
			pType := p.Type
			if pType == "" {
				pType = "Unknown"
			}
			pDesc := p.Description
			if pDesc == "" {
				pDesc = "No description."
			}
			params = append(params, fmt.Sprintf("- %s (%s): %s", name, pType, pDesc))
		}

		paramsBlock := "None"
		if len(params) > 0 {
			paramsBlock = strings.Join(params, "\n      ")
		}

		blocks = append(blocks, fmt.Sprintf(
			"Tool: %s\n  Description: %s\n  Parameters:\n      %s",
			spec.Name, description, paramsBlock,
		))
	}
	return strings.Join(blocks, "\n\n")
}

// OpenAITools converts the catalog to the wire format offered to the model
// during execution. The conversion is done once at gateway construction.
func (c *Catalog) OpenAITools() []openai.Tool {
	if len(c.specs) == 0 {
		return nil
	}
	tools := make([]openai.Tool, len(c.specs))
	for i, spec := range c.specs {
		var params any
		if len(spec.Parameters) > 0 {
			params = spec.Parameters
		}
		tools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  params,
			},
		}
	}
	return tools
}
