package openapi

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-hydrate/pkg/schema"
	"github.com/goliatone/go-hydrate/pkg/source"
)

const (
	// ExtensionIDPrefix sets the object id prefix of a generated type.
	ExtensionIDPrefix = "x-hydrate-id-prefix"
	// ExtensionUUIDIDs switches a generated type to UUID object ids.
	ExtensionUUIDIDs = "x-hydrate-uuid-ids"
	// ExtensionIgnore skips a component or property.
	ExtensionIgnore = "x-hydrate-ignore"

	// DefaultCacheTTL is how long parsed documents stay cached.
	DefaultCacheTTL = 10 * time.Minute
)

// Importer converts an OpenAPI document into type definitions.
type Importer interface {
	Import(ctx context.Context, doc source.Document) ([]schema.Definition, error)
}

// ImporterOptions configures an Importer.
type ImporterOptions struct {
	// Components limits the import to the named component schemas and the
	// components they reference. Empty imports every component.
	Components []string

	// AllowExternalRefs lets kin-openapi follow references to other
	// documents.
	AllowExternalRefs bool

	// CacheTTL controls how long parsed documents are kept, keyed by
	// content. Negative disables caching; zero means DefaultCacheTTL.
	CacheTTL time.Duration

	// Logger receives debug events.
	Logger zerolog.Logger
}

// ImporterOption mutates ImporterOptions prior to construction.
type ImporterOption func(*ImporterOptions)

// WithComponents restricts the import to the named components.
func WithComponents(names ...string) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.Components = append(opts.Components, names...)
	}
}

// WithExternalRefs allows references to other documents.
func WithExternalRefs(enabled bool) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// WithCacheTTL sets the parsed document cache lifetime.
func WithCacheTTL(ttl time.Duration) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.CacheTTL = ttl
	}
}

// WithLogger sets the importer logger.
func WithLogger(logger zerolog.Logger) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.Logger = logger
	}
}

// NewImporterOptions applies options over the defaults.
func NewImporterOptions(options ...ImporterOption) ImporterOptions {
	cfg := ImporterOptions{Logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ImportInto loads src, imports its components and defines them in catalog
// as one batch.
func ImportInto(ctx context.Context, catalog *schema.Catalog, importer Importer, loader source.Loader, src source.Source) ([]schema.Definition, error) {
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	defs, err := importer.Import(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := catalog.Define(defs...); err != nil {
		return nil, err
	}
	return defs, nil
}
