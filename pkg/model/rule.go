package model

import (
	"sort"
	"strings"
)

// RuleKind enumerates the property rule variants.
type RuleKind int

const (
	RulePassthrough RuleKind = iota
	RuleScalar
	RuleOne
	RuleMany
)

// String returns a human-readable kind name.
func (k RuleKind) String() string {
	switch k {
	case RulePassthrough:
		return "passthrough"
	case RuleScalar:
		return "scalar"
	case RuleOne:
		return "one"
	case RuleMany:
		return "many"
	default:
		return "unknown"
	}
}

// Rule describes how a single property is built from raw data. The zero value
// is Passthrough.
type Rule struct {
	kind   RuleKind
	target *Type
	marker string
}

// Passthrough copies the raw value unchanged.
func Passthrough() Rule {
	return Rule{kind: RulePassthrough}
}

// Scalar behaves like Passthrough. The marker ("String", "Number", ...) only
// documents the expected value and is never enforced.
func Scalar(marker string) Rule {
	return Rule{kind: RuleScalar, marker: strings.TrimSpace(marker)}
}

// One constructs a single instance of t from the raw value. A nil t yields
// Passthrough.
func One(t *Type) Rule {
	if t == nil {
		return Passthrough()
	}
	return Rule{kind: RuleOne, target: t}
}

// Many turns the raw value into a *List. When t is non-nil each element is
// constructed as t, otherwise elements pass through unchanged.
func Many(t *Type) Rule {
	return Rule{kind: RuleMany, target: t}
}

// Kind reports the rule variant.
func (r Rule) Kind() RuleKind {
	return r.kind
}

// Target returns the referenced type for One/Many rules, nil otherwise.
func (r Rule) Target() *Type {
	return r.target
}

// Marker returns the documentation marker of a Scalar rule.
func (r Rule) Marker() string {
	return r.marker
}

func (r Rule) String() string {
	switch r.kind {
	case RuleScalar:
		return "scalar(" + r.marker + ")"
	case RuleOne:
		return "one(" + r.target.Name() + ")"
	case RuleMany:
		if r.target == nil {
			return "many()"
		}
		return "many(" + r.target.Name() + ")"
	default:
		return "passthrough"
	}
}

// Property pairs a property name with its rule.
type Property struct {
	Name string
	Rule Rule
}

// Prop is shorthand for building a Property.
func Prop(name string, rule Rule) Property {
	return Property{Name: name, Rule: rule}
}

// Configuration is the ordered property table of a Type. Types hold it by
// pointer, so mutations made after registration are visible to later fills
// (they are not re-validated).
type Configuration struct {
	keys    []string
	rules   map[string]Rule
	dynamic *bool
}

// NewConfiguration builds a configuration from the supplied properties in
// order. Duplicate names keep their first position and the last rule.
func NewConfiguration(props ...Property) *Configuration {
	cfg := &Configuration{rules: make(map[string]Rule, len(props))}
	for _, prop := range props {
		cfg.Set(prop.Name, prop.Rule)
	}
	return cfg
}

// ConfigurationFromMap builds a configuration from a map. Keys are sorted so
// the resulting order is deterministic.
func ConfigurationFromMap(rules map[string]Rule) *Configuration {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	cfg := &Configuration{rules: make(map[string]Rule, len(rules))}
	for _, name := range names {
		cfg.Set(name, rules[name])
	}
	return cfg
}

// Set adds or replaces a property rule and returns the configuration for
// chaining.
func (c *Configuration) Set(name string, rule Rule) *Configuration {
	if c == nil || name == "" {
		return c
	}
	if c.rules == nil {
		c.rules = make(map[string]Rule)
	}
	if _, exists := c.rules[name]; !exists {
		c.keys = append(c.keys, name)
	}
	c.rules[name] = rule
	return c
}

// Delete removes a property rule.
func (c *Configuration) Delete(name string) {
	if c == nil {
		return
	}
	if _, exists := c.rules[name]; !exists {
		return
	}
	delete(c.rules, name)
	for i, key := range c.keys {
		if key == name {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Get returns the rule configured for name.
func (c *Configuration) Get(name string) (Rule, bool) {
	if c == nil {
		return Rule{}, false
	}
	rule, ok := c.rules[name]
	return rule, ok
}

// Has reports whether name is a configured property.
func (c *Configuration) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Keys returns the configured property names in declaration order.
func (c *Configuration) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// Len returns the number of configured properties.
func (c *Configuration) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// SetDynamic toggles dynamic property creation. When disabled, fills only
// touch configured keys and ignore every other key of the input.
func (c *Configuration) SetDynamic(enabled bool) *Configuration {
	if c == nil {
		return c
	}
	c.dynamic = &enabled
	return c
}

// Dynamic reports whether keys missing from the configuration are created
// from input data. Defaults to true.
func (c *Configuration) Dynamic() bool {
	if c == nil || c.dynamic == nil {
		return true
	}
	return *c.dynamic
}
