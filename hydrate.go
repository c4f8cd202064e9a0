// Package hydrate is the entry point for building model types and hydrating
// instances from plain data trees.
//
//	post := hydrate.NewType("Post")
//	hydrate.MustRegister(post, hydrate.NewConfiguration(
//		hydrate.Prop("title", hydrate.Scalar("String")),
//		hydrate.Prop("author", hydrate.One(author)),
//		hydrate.Prop("tags", hydrate.Many(nil)),
//	))
//	m, err := post.NewModel(data)
//
// Types can also be declared in YAML/JSON documents (see package schema) or
// imported from OpenAPI component schemas (see package openapi).
package hydrate

import (
	"context"

	"github.com/goliatone/go-hydrate/internal/loader"
	"github.com/goliatone/go-hydrate/internal/openapi/importer"
	"github.com/goliatone/go-hydrate/pkg/model"
	pkgopenapi "github.com/goliatone/go-hydrate/pkg/openapi"
	"github.com/goliatone/go-hydrate/pkg/schema"
	"github.com/goliatone/go-hydrate/pkg/source"
)

type (
	// Type aliases model.Type.
	Type = model.Type
	// Model aliases model.Model.
	Model = model.Model
	// Rule aliases model.Rule.
	Rule = model.Rule
	// Configuration aliases model.Configuration.
	Configuration = model.Configuration
	// List aliases model.List.
	List = model.List
	// Registry aliases model.Registry.
	Registry = model.Registry
	// Catalog aliases schema.Catalog.
	Catalog = schema.Catalog
)

// Register attaches cfg to target on the default registry.
func Register(target any, cfg *Configuration) error {
	return model.Register(target, cfg)
}

// MustRegister panics when Register fails.
func MustRegister(target any, cfg *Configuration) {
	model.MustRegister(target, cfg)
}

// NewType constructs a model type.
func NewType(name string, options ...model.TypeOption) *Type {
	return model.NewType(name, options...)
}

// NewConfiguration builds an ordered configuration.
func NewConfiguration(props ...model.Property) *Configuration {
	return model.NewConfiguration(props...)
}

// Prop pairs a property name with its rule.
func Prop(name string, rule Rule) model.Property {
	return model.Prop(name, rule)
}

// Passthrough stores raw values as-is.
func Passthrough() Rule { return model.Passthrough() }

// Scalar stores raw values as-is; marker documents the expected type.
func Scalar(marker string) Rule { return model.Scalar(marker) }

// One builds a single nested instance of t.
func One(t *Type) Rule { return model.One(t) }

// Many builds a list, with elements built as t when t is not nil.
func Many(t *Type) Rule { return model.Many(t) }

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return loader.New(source.NewLoaderOptions(options...))
}

// NewImporter constructs the kin-openapi backed importer.
func NewImporter(options ...pkgopenapi.ImporterOption) pkgopenapi.Importer {
	return importer.New(pkgopenapi.NewImporterOptions(options...))
}

// NewCatalog constructs an empty schema catalog.
func NewCatalog(options ...schema.CatalogOption) *Catalog {
	return schema.NewCatalog(options...)
}

// LoadRequest lists the documents LoadCatalog reads.
type LoadRequest struct {
	// Schemas are type definition documents, defined as one batch.
	Schemas []source.Source
	// OpenAPI documents are imported after the schemas, one batch each.
	OpenAPI []source.Source

	LoaderOptions   []source.LoaderOption
	ImporterOptions []pkgopenapi.ImporterOption
	CatalogOptions  []schema.CatalogOption
}

// LoadCatalog builds a catalog from type definition and OpenAPI documents.
func LoadCatalog(ctx context.Context, req LoadRequest) (*Catalog, error) {
	catalog := schema.NewCatalog(req.CatalogOptions...)
	docs := NewLoader(req.LoaderOptions...)

	if len(req.Schemas) > 0 {
		if err := catalog.Load(ctx, docs, req.Schemas...); err != nil {
			return nil, err
		}
	}
	if len(req.OpenAPI) > 0 {
		imp := NewImporter(req.ImporterOptions...)
		for _, src := range req.OpenAPI {
			if _, err := pkgopenapi.ImportInto(ctx, catalog, imp, docs, src); err != nil {
				return nil, err
			}
		}
	}
	return catalog, nil
}
