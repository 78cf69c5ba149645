package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative YAML form of an API description, consumed
// by the CLI. It carries the document configuration inline plus the
// resource tree and named component schemas.
type Definition struct {
	Config  `yaml:",inline"`
	APIs    []APIDefinition   `yaml:"apis"`
	Schemas map[string]Schema `yaml:"schemas"`
}

// APIDefinition is one resource API in a definition file.
type APIDefinition struct {
	Name   string            `yaml:"name"`
	Groups []GroupDefinition `yaml:"groups"`
}

// GroupDefinition is one resource group.
type GroupDefinition struct {
	Label     string               `yaml:"label"`
	Resources []ResourceDefinition `yaml:"resources"`
}

// ResourceDefinition is one path with its operations.
type ResourceDefinition struct {
	Path       string                `yaml:"path"`
	Operations []OperationDefinition `yaml:"operations"`
}

// OperationDefinition is one operation.
type OperationDefinition struct {
	Method      string                `yaml:"method"`
	Label       string                `yaml:"label"`
	Summary     string                `yaml:"summary"`
	Description string                `yaml:"description"`
	Tags        []string              `yaml:"tags"`
	Deprecated  bool                  `yaml:"deprecated"`
	Parameters  []ParameterDefinition `yaml:"parameters"`
	RequestBody *BodyDefinition       `yaml:"requestBody"`
	Responses   []ResponseDefinition  `yaml:"responses"`
}

// ParameterDefinition is one non-body parameter. Type is a scalar
// shorthand (string, integer, number, boolean); Schema references a named
// component and wins over Type.
type ParameterDefinition struct {
	Name        string `yaml:"name"`
	In          string `yaml:"in"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
	Type        string `yaml:"type"`
	Schema      string `yaml:"schema"`
}

// BodyDefinition is a request payload.
type BodyDefinition struct {
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
	MediaType   string `yaml:"mediaType"`
	Schema      string `yaml:"schema"`
	Type        string `yaml:"type"`
}

// ResponseDefinition is one response.
type ResponseDefinition struct {
	Status      string `yaml:"status"`
	Description string `yaml:"description"`
	MediaType   string `yaml:"mediaType"`
	Schema      string `yaml:"schema"`
	Type        string `yaml:"type"`
}

// LoadDefinition reads and parses a YAML definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("core: read definition %q: %w", path, err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("core: parse definition %q: %w", path, err)
	}
	return &def, nil
}

// Build turns the definition into resource APIs plus a registry seeded
// with the named schemas, ready for GenerateWith.
func (d *Definition) Build() ([]ResourceApi, *Registry, error) {
	registry := NewRegistry(d.TrimSchemaPrefix)
	for name, schema := range d.Schemas {
		registry.Register(name, schema)
	}

	if len(d.APIs) == 0 {
		return nil, nil, fmt.Errorf("core: definition declares no apis")
	}

	apis := make([]ResourceApi, 0, len(d.APIs))
	for _, apiDef := range d.APIs {
		api := NewAPI(apiDef.Name)
		for _, groupDef := range apiDef.Groups {
			group := api.Group(groupDef.Label)
			for _, resDef := range groupDef.Resources {
				path := strings.TrimSpace(resDef.Path)
				if path == "" {
					return nil, nil, fmt.Errorf("core: resource without path in group %q", groupDef.Label)
				}
				route := group.Route(path)
				for _, opDef := range resDef.Operations {
					if strings.TrimSpace(opDef.Method) == "" {
						return nil, nil, fmt.Errorf("core: operation without method on %q", path)
					}
					buildOperation(route, opDef)
				}
			}
		}
		apis = append(apis, api)
	}
	return apis, registry, nil
}

func buildOperation(route *Route, def OperationDefinition) {
	op := route.Operation(def.Method).
		WithLabel(def.Label).
		WithSummary(def.Summary).
		WithDescription(def.Description).
		WithTags(def.Tags...)
	if def.Deprecated {
		op.MarkDeprecated()
	}
	for _, p := range def.Parameters {
		op.WithParameter(Parameter{
			Name:        p.Name,
			In:          p.In,
			Description: p.Description,
			Required:    p.Required,
			Schema:      schemaRefFromDef(p.Schema, p.Type),
		})
	}
	if b := def.RequestBody; b != nil {
		op.WithRequestBody(RequestBody{
			Description: b.Description,
			Required:    b.Required,
			MediaType:   b.MediaType,
			Schema:      schemaRefFromDef(b.Schema, b.Type),
		})
	}
	for _, r := range def.Responses {
		op.WithResponse(Response{
			Status:      r.Status,
			Description: r.Description,
			MediaType:   r.MediaType,
			Schema:      schemaRefFromDef(r.Schema, r.Type),
		})
	}
}

func schemaRefFromDef(name, scalar string) SchemaRef {
	if name = strings.TrimSpace(name); name != "" {
		return RefSchema(name)
	}
	switch strings.ToLower(strings.TrimSpace(scalar)) {
	case "":
		return SchemaRef{}
	case "string":
		return InlineSchema(Schema{"type": "string"})
	case "int", "integer":
		return InlineSchema(Schema{"type": "integer"})
	case "number", "float":
		return InlineSchema(Schema{"type": "number"})
	case "bool", "boolean":
		return InlineSchema(Schema{"type": "boolean"})
	case "array":
		return InlineSchema(Schema{"type": "array", "items": map[string]interface{}{"type": "string"}})
	default:
		return InlineSchema(Schema{"type": "object"})
	}
}
