package schema

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-hydrate/pkg/model"
	"github.com/goliatone/go-hydrate/pkg/source"
)

// Catalog builds types from definitions and keeps them by name so later
// definitions can reference earlier ones. Every built type is registered with
// the catalog's model.Registry.
type Catalog struct {
	mu       sync.RWMutex
	registry *model.Registry
	logger   zerolog.Logger
	types    map[string]*model.Type
	defs     map[string]Definition
	options  map[string][]model.TypeOption
	common   []model.TypeOption
}

// CatalogOption customises a Catalog.
type CatalogOption func(*Catalog)

// WithRegistry registers built types with reg instead of a private registry.
func WithRegistry(reg *model.Registry) CatalogOption {
	return func(c *Catalog) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithLogger sets the catalog logger.
func WithLogger(logger zerolog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithTypeOptions applies options to the named type when it is built, which
// is how hooks and constructors are attached to declared types.
func WithTypeOptions(name string, options ...model.TypeOption) CatalogOption {
	return func(c *Catalog) {
		c.options[name] = append(c.options[name], options...)
	}
}

// WithCommonTypeOptions applies options to every type the catalog builds.
func WithCommonTypeOptions(options ...model.TypeOption) CatalogOption {
	return func(c *Catalog) {
		c.common = append(c.common, options...)
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(options ...CatalogOption) *Catalog {
	c := &Catalog{
		logger:  zerolog.Nop(),
		types:   make(map[string]*model.Type),
		defs:    make(map[string]Definition),
		options: make(map[string][]model.TypeOption),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.registry == nil {
		c.registry = model.NewRegistry(model.WithLogger(c.logger))
	}
	return c
}

// Registry returns the registry built types are registered with.
func (c *Catalog) Registry() *model.Registry {
	return c.registry
}

// Add makes an externally built type referenceable by name. The type is not
// registered; types built with model.Func need no registration.
func (c *Catalog) Add(t *model.Type) error {
	if t == nil {
		return fmt.Errorf("schema: type is required")
	}
	name := t.Name()
	if name == "" {
		return fmt.Errorf("schema: type name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.types[name]; exists {
		return fmt.Errorf("schema: type %q already defined", name)
	}
	c.types[name] = t
	return nil
}

// MustAdd panics when Add fails. Useful for init-time wiring.
func (c *Catalog) MustAdd(t *model.Type) {
	if err := c.Add(t); err != nil {
		panic(err)
	}
}

// Define builds and registers a batch of definitions. References may point at
// types in the same batch or at types already in the catalog. Either the
// whole batch is added or, on error, none of it.
func (c *Catalog) Define(defs ...Definition) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch := make(map[string]*model.Type, len(defs))
	order := make([]*model.Type, 0, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return err
		}
		if _, exists := c.types[def.Name]; exists {
			return fmt.Errorf("schema: type %q already defined", def.Name)
		}
		if prev, exists := batch[def.Name]; exists {
			return fmt.Errorf("schema: type %q defined twice (%s)", prev.Name(), def.origin())
		}
		options := append(append(def.typeOptions(), c.common...), c.options[def.Name]...)
		t := model.NewType(def.Name, options...)
		batch[def.Name] = t
		order = append(order, t)
	}

	lookup := func(name string) (*model.Type, bool) {
		if t, ok := batch[name]; ok {
			return t, true
		}
		t, ok := c.types[name]
		return t, ok
	}

	for i, def := range defs {
		cfg, err := buildConfiguration(def, lookup)
		if err != nil {
			return err
		}
		order[i].SetConfiguration(cfg)
	}

	for _, t := range order {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("schema: register %s: %w", t.Name(), err)
		}
	}
	for _, t := range order {
		if err := c.registry.Register(t, nil); err != nil {
			return fmt.Errorf("schema: register %s: %w", t.Name(), err)
		}
	}

	for i, def := range defs {
		c.types[def.Name] = order[i]
		c.defs[def.Name] = def
	}

	c.logger.Debug().
		Int("types", len(defs)).
		Int("catalog_size", len(c.types)).
		Msg("schema: defined types")
	return nil
}

func buildConfiguration(def Definition, lookup func(string) (*model.Type, bool)) (*model.Configuration, error) {
	cfg := model.NewConfiguration()
	if def.Dynamic != nil {
		cfg.SetDynamic(*def.Dynamic)
	}
	for _, prop := range def.Properties {
		rule, err := buildRule(def, prop, lookup)
		if err != nil {
			return nil, err
		}
		cfg.Set(prop.Name, rule)
	}
	return cfg, nil
}

func buildRule(def Definition, prop PropertyDefinition, lookup func(string) (*model.Type, bool)) (model.Rule, error) {
	var target *model.Type
	if prop.Target != "" {
		t, ok := lookup(prop.Target)
		if !ok {
			return model.Rule{}, fmt.Errorf("schema: type %q property %q references unknown type %q", def.Name, prop.Name, prop.Target)
		}
		target = t
	}

	switch prop.Kind {
	case model.RuleOne:
		return model.One(target), nil
	case model.RuleMany:
		return model.Many(target), nil
	case model.RuleScalar:
		return model.Scalar(prop.Marker), nil
	default:
		return model.Passthrough(), nil
	}
}

// Get retrieves a type by name.
func (c *Catalog) Get(name string) (*model.Type, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.types[name]
	if !ok {
		return nil, fmt.Errorf("schema: type %q not found", name)
	}
	return t, nil
}

// MustGet panics if the type is missing.
func (c *Catalog) MustGet(name string) *model.Type {
	t, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Definition returns the declaration a type was built from. Types added with
// Add have none.
func (c *Catalog) Definition(name string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.defs[name]
	return def, ok
}

// List returns the sorted type names.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a type is known.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.types[name]
	return ok
}

// New hydrates a new instance of the named type.
func (c *Catalog) New(name string, data any) (*model.Model, error) {
	t, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	if !t.Configured() {
		return nil, fmt.Errorf("schema: type %q is not a configured model type", name)
	}
	return t.NewModel(data)
}

// Load fetches documents through loader and defines their types as a single
// batch.
func (c *Catalog) Load(ctx context.Context, loader source.Loader, sources ...source.Source) error {
	if loader == nil {
		return fmt.Errorf("schema: loader is required")
	}
	var defs []Definition
	for _, src := range sources {
		doc, err := loader.Load(ctx, src)
		if err != nil {
			return fmt.Errorf("schema: load %s: %w", describe(src), err)
		}
		parsed, err := Parse(doc)
		if err != nil {
			return err
		}
		defs = append(defs, parsed...)
	}
	return c.Define(defs...)
}

func describe(src source.Source) string {
	if src == nil {
		return "<nil>"
	}
	return strings.TrimSpace(string(src.Kind()) + " " + src.Location())
}
