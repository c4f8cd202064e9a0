package importer

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-hydrate/pkg/model"
	pkgopenapi "github.com/goliatone/go-hydrate/pkg/openapi"
	"github.com/goliatone/go-hydrate/pkg/schema"
)

const componentPrefix = "#/components/schemas/"

type converter struct {
	components openapi3.Schemas
	location   string
	defs       []schema.Definition
}

// add appends the definition for name, followed by the definitions of its
// inline nested objects.
func (c *converter) add(name string, s *openapi3.Schema) {
	slot := len(c.defs)
	c.defs = append(c.defs, schema.Definition{})
	c.defs[slot] = c.definition(name, s)
}

func (c *converter) definition(name string, s *openapi3.Schema) schema.Definition {
	def := schema.Definition{Name: name, Source: c.location}

	if prefix, ok := s.Extensions[pkgopenapi.ExtensionIDPrefix].(string); ok {
		def.IDPrefix = &prefix
	}
	if enabled, ok := s.Extensions[pkgopenapi.ExtensionUUIDIDs].(bool); ok && enabled {
		def.UUIDIDs = true
	}

	props, additional := collectProperties(s)
	if additional != nil && !*additional {
		dynamic := false
		def.Dynamic = &dynamic
	}

	for _, propName := range sortedNames(props) {
		ref := props[propName]
		if ref == nil || ignored(ref.Value) {
			continue
		}
		def.Properties = append(def.Properties, c.property(name, propName, ref))
	}
	return def
}

func (c *converter) property(parent, name string, ref *openapi3.SchemaRef) schema.PropertyDefinition {
	prop := schema.PropertyDefinition{Name: name}
	if target, ok := c.objectComponent(ref); ok {
		prop.Kind = model.RuleOne
		prop.Target = target
		return prop
	}

	s := ref.Value
	if s == nil {
		return prop
	}

	typ := firstSchemaType(s.Type)
	switch {
	case typ == "array":
		prop.Kind = model.RuleMany
		if s.Items == nil {
			return prop
		}
		if target, ok := c.objectComponent(s.Items); ok {
			prop.Target = target
		} else if hasProperties(s.Items.Value) {
			prop.Target = c.nested(parent, name, s.Items.Value)
		}
	case hasProperties(s):
		prop.Kind = model.RuleOne
		prop.Target = c.nested(parent, name, s)
	case typ == "" || typ == "object":
		prop.Kind = model.RulePassthrough
	default:
		prop.Kind = model.RuleScalar
		prop.Marker = typ
	}
	return prop
}

func (c *converter) nested(parent, name string, s *openapi3.Schema) string {
	nestedName := parent + "." + name
	c.add(nestedName, s)
	return nestedName
}

// objectComponent reports the component name of a local reference to an
// object schema.
func (c *converter) objectComponent(ref *openapi3.SchemaRef) (string, bool) {
	if ref == nil {
		return "", false
	}
	name, ok := strings.CutPrefix(ref.Ref, componentPrefix)
	if !ok {
		return "", false
	}
	target, exists := c.components[name]
	if !exists || target == nil || !isObject(target.Value) || ignored(target.Value) {
		return "", false
	}
	return name, true
}

// collectProperties merges allOf members into one property table. Later
// members and the schema's own properties win.
func collectProperties(s *openapi3.Schema) (openapi3.Schemas, *bool) {
	out := openapi3.Schemas{}
	var additional *bool
	if s == nil {
		return out, nil
	}
	for _, part := range s.AllOf {
		if part == nil || part.Value == nil {
			continue
		}
		props, partAdditional := collectProperties(part.Value)
		for key, value := range props {
			out[key] = value
		}
		if partAdditional != nil {
			additional = partAdditional
		}
	}
	for key, value := range s.Properties {
		out[key] = value
	}
	if s.AdditionalProperties.Has != nil {
		additional = s.AdditionalProperties.Has
	}
	return out, additional
}

// componentRefs lists the components referenced from s, without following
// the references themselves.
func componentRefs(s *openapi3.Schema) []string {
	var out []string
	var walk func(ref *openapi3.SchemaRef)
	walk = func(ref *openapi3.SchemaRef) {
		if ref == nil {
			return
		}
		if name, ok := strings.CutPrefix(ref.Ref, componentPrefix); ok {
			out = append(out, name)
			return
		}
		walkSchema(ref.Value, walk)
	}
	walkSchema(s, walk)
	return out
}

func walkSchema(s *openapi3.Schema, visit func(*openapi3.SchemaRef)) {
	if s == nil {
		return
	}
	for _, part := range s.AllOf {
		visit(part)
	}
	for _, name := range sortedNames(s.Properties) {
		visit(s.Properties[name])
	}
	visit(s.Items)
}

func isObject(s *openapi3.Schema) bool {
	if s == nil {
		return false
	}
	if s.Type != nil && s.Type.Is(openapi3.TypeObject) {
		return true
	}
	return hasProperties(s)
}

func hasProperties(s *openapi3.Schema) bool {
	if s == nil {
		return false
	}
	if len(s.Properties) > 0 {
		return true
	}
	for _, part := range s.AllOf {
		if part != nil && hasProperties(part.Value) {
			return true
		}
	}
	return false
}

func ignored(s *openapi3.Schema) bool {
	if s == nil {
		return false
	}
	skip, _ := s.Extensions[pkgopenapi.ExtensionIgnore].(bool)
	return skip
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func sortedNames(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
