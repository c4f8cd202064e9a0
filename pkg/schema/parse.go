package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hydrate/pkg/model"
	"github.com/goliatone/go-hydrate/pkg/source"
)

// Parse decodes the type definitions held by doc. JSON documents are parsed
// through the YAML decoder so property order is kept for both formats.
func Parse(doc source.Document) ([]Definition, error) {
	return ParseBytes(doc.Raw(), doc.Location())
}

// ParseBytes decodes type definitions from raw YAML or JSON.
func ParseBytes(data []byte, location string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: file %s is empty", location)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", location, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("schema: parse %s: expected a document", location)
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: %s: expected a mapping at the top level", location)
	}

	typesNode := mappingValue(top, "types")
	if typesNode == nil {
		return nil, fmt.Errorf("schema: %s: missing types", location)
	}

	var defs []Definition
	switch typesNode.Kind {
	case yaml.SequenceNode:
		for _, item := range typesNode.Content {
			def, err := parseDefinition(item, "", location)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(typesNode.Content); i += 2 {
			def, err := parseDefinition(typesNode.Content[i+1], typesNode.Content[i].Value, location)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	default:
		return nil, fmt.Errorf("schema: %s: types must be a list or a mapping", location)
	}

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

type definitionFile struct {
	Name              string  `yaml:"name"`
	IDPrefix          *string `yaml:"idPrefix"`
	UUIDIDs           bool    `yaml:"uuidIds"`
	DynamicProperties *bool   `yaml:"dynamicProperties"`
}

func parseDefinition(node *yaml.Node, name, location string) (Definition, error) {
	if node.Kind != yaml.MappingNode {
		return Definition{}, fmt.Errorf("schema: %s line %d: type must be a mapping", location, node.Line)
	}

	var file definitionFile
	if err := node.Decode(&file); err != nil {
		return Definition{}, fmt.Errorf("schema: %s line %d: %w", location, node.Line, err)
	}
	if name == "" {
		name = file.Name
	}

	def := Definition{
		Name:     strings.TrimSpace(name),
		IDPrefix: file.IDPrefix,
		UUIDIDs:  file.UUIDIDs,
		Dynamic:  file.DynamicProperties,
		Source:   location,
	}

	props := mappingValue(node, "properties")
	if props == nil || isNull(props) {
		return def, nil
	}
	if props.Kind != yaml.MappingNode {
		return Definition{}, fmt.Errorf("schema: type %q (%s line %d): properties must be a mapping", def.Name, location, props.Line)
	}
	for i := 0; i+1 < len(props.Content); i += 2 {
		key := props.Content[i].Value
		prop, err := parseProperty(key, props.Content[i+1])
		if err != nil {
			return Definition{}, fmt.Errorf("schema: type %q (%s line %d): %w", def.Name, location, props.Content[i].Line, err)
		}
		def.Properties = append(def.Properties, prop)
	}
	return def, nil
}

type propertyFile struct {
	One    string    `yaml:"one"`
	Many   yaml.Node `yaml:"many"`
	Scalar string    `yaml:"scalar"`
}

func parseProperty(name string, node *yaml.Node) (PropertyDefinition, error) {
	prop := PropertyDefinition{Name: name}

	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) {
			prop.Kind = model.RulePassthrough
			return prop, nil
		}
		prop.Kind = model.RuleScalar
		prop.Marker = node.Value
		return prop, nil

	case yaml.SequenceNode:
		prop.Kind = model.RuleMany
		switch len(node.Content) {
		case 0:
			return prop, nil
		case 1:
			if node.Content[0].Kind != yaml.ScalarNode || node.Content[0].Value == "" {
				return prop, fmt.Errorf("property %q: list element must be a type name", name)
			}
			prop.Target = node.Content[0].Value
			return prop, nil
		default:
			return prop, fmt.Errorf("property %q: list form takes at most one type name", name)
		}

	case yaml.MappingNode:
		var file propertyFile
		if err := node.Decode(&file); err != nil {
			return prop, fmt.Errorf("property %q: %w", name, err)
		}
		set := 0
		if file.One != "" {
			set++
			prop.Kind = model.RuleOne
			prop.Target = file.One
		}
		if file.Scalar != "" {
			set++
			prop.Kind = model.RuleScalar
			prop.Marker = file.Scalar
		}
		if file.Many.Kind != 0 {
			set++
			prop.Kind = model.RuleMany
			target, err := manyTarget(file.Many)
			if err != nil {
				return prop, fmt.Errorf("property %q: %w", name, err)
			}
			prop.Target = target
		}
		if set > 1 {
			return prop, fmt.Errorf("property %q: one, many and scalar are mutually exclusive", name)
		}
		return prop, nil

	default:
		return prop, fmt.Errorf("property %q: unsupported rule", name)
	}
}

func manyTarget(node yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("many must be true or a type name")
	}
	if node.Tag == "!!bool" {
		if node.Value == "true" {
			return "", nil
		}
		return "", fmt.Errorf("many: false is not a rule")
	}
	if node.Value == "" {
		return "", fmt.Errorf("many must be true or a type name")
	}
	return node.Value, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
