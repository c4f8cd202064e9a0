// Package importer implements openapi.Importer on top of kin-openapi.
package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	pkgopenapi "github.com/goliatone/go-hydrate/pkg/openapi"
	"github.com/goliatone/go-hydrate/pkg/schema"
	"github.com/goliatone/go-hydrate/pkg/source"
)

// Importer converts OpenAPI component schemas into schema definitions.
type Importer struct {
	options pkgopenapi.ImporterOptions
	cache   *gocache.Cache
	logger  zerolog.Logger
}

var _ pkgopenapi.Importer = (*Importer)(nil)

// New constructs an Importer from resolved options.
func New(options pkgopenapi.ImporterOptions) *Importer {
	imp := &Importer{options: options, logger: options.Logger}

	ttl := options.CacheTTL
	if ttl == 0 {
		ttl = pkgopenapi.DefaultCacheTTL
	}
	if ttl > 0 {
		imp.cache = gocache.New(ttl, 2*ttl)
	}
	return imp
}

// Import parses doc and converts the selected component schemas. Components
// that are not objects (enums, plain scalars) produce no definition; a
// property referencing one becomes a scalar.
func (i *Importer) Import(ctx context.Context, doc source.Document) ([]schema.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec, err := i.parse(ctx, doc)
	if err != nil {
		return nil, err
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, fmt.Errorf("openapi: %s defines no component schemas", doc.Location())
	}
	components := spec.Components.Schemas

	names, err := i.selectComponents(components)
	if err != nil {
		return nil, err
	}

	conv := &converter{components: components, location: doc.Location()}
	for _, name := range names {
		ref := components[name]
		if ref == nil || !isObject(ref.Value) || ignored(ref.Value) {
			continue
		}
		conv.add(name, ref.Value)
	}

	i.logger.Debug().
		Str("location", doc.Location()).
		Int("components", len(components)).
		Int("definitions", len(conv.defs)).
		Msg("openapi: imported components")
	return conv.defs, nil
}

// CachedDocuments reports how many parsed documents are cached.
func (i *Importer) CachedDocuments() int {
	if i.cache == nil {
		return 0
	}
	return i.cache.ItemCount()
}

func (i *Importer) parse(ctx context.Context, doc source.Document) (*openapi3.T, error) {
	raw := doc.Raw()
	key := cacheKey(raw, i.options.AllowExternalRefs)
	if i.cache != nil {
		if cached, ok := i.cache.Get(key); ok {
			i.logger.Debug().Str("location", doc.Location()).Msg("openapi: document cache hit")
			return cached.(*openapi3.T), nil
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.options.AllowExternalRefs,
	}

	var (
		spec *openapi3.T
		err  error
	)
	if i.options.AllowExternalRefs && doc.Source() != nil && doc.Source().Kind() == source.KindFile {
		spec, err = loader.LoadFromDataWithPath(raw, &url.URL{Path: doc.Location()})
	} else {
		spec, err = loader.LoadFromData(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", doc.Location(), err)
	}

	if i.cache != nil {
		i.cache.Set(key, spec, gocache.DefaultExpiration)
	}
	return spec, nil
}

func (i *Importer) selectComponents(components openapi3.Schemas) ([]string, error) {
	if len(i.options.Components) == 0 {
		names := make([]string, 0, len(components))
		for name := range components {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}

	selected := make(map[string]struct{})
	queue := append([]string(nil), i.options.Components...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, done := selected[name]; done {
			continue
		}
		ref, ok := components[name]
		if !ok || ref == nil {
			return nil, fmt.Errorf("openapi: component %q not found", name)
		}
		selected[name] = struct{}{}
		queue = append(queue, componentRefs(ref.Value)...)
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func cacheKey(raw []byte, external bool) string {
	sum := sha256.Sum256(raw)
	key := hex.EncodeToString(sum[:])
	if external {
		key += ":ext"
	}
	return key
}
