package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-hydrate/pkg/model"
)

// Definition is a parsed type declaration.
type Definition struct {
	Name       string
	IDPrefix   *string
	UUIDIDs    bool
	Dynamic    *bool
	Properties []PropertyDefinition
	// Source is the document location the definition came from.
	Source string
}

// PropertyDefinition is a parsed property rule. Target names the referenced
// type for One rules and, when set, for Many rules.
type PropertyDefinition struct {
	Name   string
	Kind   model.RuleKind
	Target string
	Marker string
}

// Validate checks the definition in isolation.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("schema: %s: type name is required", d.origin())
	}
	seen := make(map[string]struct{}, len(d.Properties))
	for _, prop := range d.Properties {
		if strings.TrimSpace(prop.Name) == "" {
			return fmt.Errorf("schema: type %q (%s) defines an empty property name", d.Name, d.origin())
		}
		if _, dup := seen[prop.Name]; dup {
			return fmt.Errorf("schema: type %q (%s) defines duplicate property %q", d.Name, d.origin(), prop.Name)
		}
		seen[prop.Name] = struct{}{}
		if prop.Kind == model.RuleOne && prop.Target == "" {
			return fmt.Errorf("schema: type %q property %q: one requires a type name", d.Name, prop.Name)
		}
	}
	return nil
}

// References returns the distinct type names the definition points at.
func (d Definition) References() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, prop := range d.Properties {
		if prop.Target == "" {
			continue
		}
		if _, ok := seen[prop.Target]; ok {
			continue
		}
		seen[prop.Target] = struct{}{}
		out = append(out, prop.Target)
	}
	return out
}

func (d Definition) origin() string {
	if d.Source == "" {
		return "inline"
	}
	return d.Source
}

func (d Definition) typeOptions() []model.TypeOption {
	var options []model.TypeOption
	if d.IDPrefix != nil {
		options = append(options, model.WithIDPrefix(*d.IDPrefix))
	}
	if d.UUIDIDs {
		options = append(options, model.WithUUIDObjectIDs())
	}
	return options
}
