package schema_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-hydrate/internal/loader"
	"github.com/goliatone/go-hydrate/pkg/hooks"
	"github.com/goliatone/go-hydrate/pkg/model"
	"github.com/goliatone/go-hydrate/pkg/schema"
	"github.com/goliatone/go-hydrate/pkg/source"
)

func TestParseBytesKeepsOrderAndRules(t *testing.T) {
	defs, err := schema.ParseBytes([]byte(`
types:
  - name: Post
    idPrefix: post-
    dynamicProperties: false
    properties:
      title: String
      body: ~
      author: {one: Author}
      tags: {many: true}
      comments: [Comment]
      raw: []
      meta: {}
      related: {many: Post}
`), "inline.yaml")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	require.Equal(t, "Post", def.Name)
	require.Equal(t, "inline.yaml", def.Source)
	require.NotNil(t, def.IDPrefix)
	require.Equal(t, "post-", *def.IDPrefix)
	require.NotNil(t, def.Dynamic)
	require.False(t, *def.Dynamic)

	want := []schema.PropertyDefinition{
		{Name: "title", Kind: model.RuleScalar, Marker: "String"},
		{Name: "body", Kind: model.RulePassthrough},
		{Name: "author", Kind: model.RuleOne, Target: "Author"},
		{Name: "tags", Kind: model.RuleMany},
		{Name: "comments", Kind: model.RuleMany, Target: "Comment"},
		{Name: "raw", Kind: model.RuleMany},
		{Name: "meta", Kind: model.RulePassthrough},
		{Name: "related", Kind: model.RuleMany, Target: "Post"},
	}
	require.Equal(t, want, def.Properties)
	require.Equal(t, []string{"Author", "Comment", "Post"}, def.References())
}

func TestParseBytesMappingForm(t *testing.T) {
	raw, err := os.ReadFile("testdata/blog/people.json")
	require.NoError(t, err)

	defs, err := schema.ParseBytes(raw, "people.json")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Equal(t, "Author", defs[0].Name)
	require.True(t, defs[0].UUIDIDs)
	require.Equal(t, []string{"name", "links"}, []string{defs[0].Properties[0].Name, defs[0].Properties[1].Name})
}

func TestParseBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "empty", doc: "  ", want: "is empty"},
		{name: "not a mapping", doc: "- a\n- b\n", want: "expected a mapping"},
		{name: "missing types", doc: "other: 1\n", want: "missing types"},
		{name: "scalar types", doc: "types: 3\n", want: "must be a list or a mapping"},
		{name: "missing name", doc: "types:\n  - properties: {}\n", want: "type name is required"},
		{name: "many false", doc: "types:\n  - name: A\n    properties:\n      x: {many: false}\n", want: "many: false"},
		{name: "exclusive", doc: "types:\n  - name: A\n    properties:\n      x: {one: B, many: true}\n", want: "mutually exclusive"},
		{name: "list with two names", doc: "types:\n  - name: A\n    properties:\n      x: [B, C]\n", want: "at most one type name"},
		{name: "duplicate property", doc: `{"types": [{"name": "A", "properties": {"x": "String", "x": "Number"}}]}`, want: "duplicate property"},
		{name: "invalid syntax", doc: "types: [\n", want: "schema: parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.ParseBytes([]byte(tt.doc), "doc.yaml")
			require.Error(t, err)
			if tt.want != "" {
				require.ErrorContains(t, err, tt.want)
			}
		})
	}
}

func newBlogCatalog(t *testing.T, options ...schema.CatalogOption) *schema.Catalog {
	t.Helper()

	catalog := schema.NewCatalog(options...)
	require.NoError(t, catalog.LoadFS(os.DirFS("testdata/blog")))
	return catalog
}

func TestCatalogLoadFSResolvesAcrossFiles(t *testing.T) {
	catalog := newBlogCatalog(t)
	require.Equal(t, []string{"Author", "Comment", "Post"}, catalog.List())
	require.Equal(t, []string{"Author", "Comment", "Post"}, catalog.Registry().Types())

	post, err := catalog.New("Post", map[string]any{
		"title":    "Hello",
		"body":     map[string]any{"blocks": 2},
		"author":   map[string]any{"name": "Ann"},
		"tags":     []any{"go", "yaml"},
		"comments": []any{map[string]any{"text": "first", "author": map[string]any{"name": "Bob"}}},
		"ignored":  true,
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(post.ObjectID(), "post-"))
	require.False(t, post.Has("ignored"))

	author, ok := post.Model("author")
	require.True(t, ok)
	require.Equal(t, "Ann", author.Value("name"))
	_, err = uuid.Parse(strings.TrimPrefix(author.ObjectID(), model.DefaultIDPrefix))
	require.NoError(t, err)

	comments, ok := post.List("comments")
	require.True(t, ok)
	require.Equal(t, 1, comments.Len())
	comment := comments.At(0).(*model.Model)
	require.Equal(t, "Comment", comment.Type().Name())
	require.Equal(t, "first", comment.Value("text"))

	require.Equal(t, map[string]any{
		"title":    "Hello",
		"body":     map[string]any{"blocks": 2},
		"author":   map[string]any{"name": "Ann", "links": []any{}},
		"tags":     []any{"go", "yaml"},
		"comments": []any{map[string]any{"text": "first", "author": map[string]any{"name": "Bob", "links": []any{}}}},
	}, post.ToMap())

	def, ok := catalog.Definition("Post")
	require.True(t, ok)
	require.Equal(t, "posts.yaml", def.Source)
}

func TestCatalogLoadThroughLoader(t *testing.T) {
	files := fstest.MapFS{
		"a.yaml": {Data: []byte("types:\n  - name: Tag\n    properties:\n      label: String\n")},
		"b.yaml": {Data: []byte("types:\n  - name: Note\n    properties:\n      tags: [Tag]\n")},
	}
	l := loader.New(source.NewLoaderOptions(source.WithFileSystem(files)))

	catalog := schema.NewCatalog()
	require.NoError(t, catalog.Load(context.Background(), l, source.FromFS("b.yaml"), source.FromFS("a.yaml")))

	note, err := catalog.New("Note", map[string]any{"tags": "urgent"})
	require.NoError(t, err)
	tags, _ := note.List("tags")
	require.Equal(t, 1, tags.Len())
	require.Nil(t, tags.At(0).(*model.Model).Value("label"))

	err = catalog.Load(context.Background(), l, source.FromFS("missing.yaml"))
	require.ErrorContains(t, err, "schema: load fs missing.yaml")
}

func TestCatalogDefineErrors(t *testing.T) {
	t.Run("unknown reference", func(t *testing.T) {
		catalog := schema.NewCatalog()
		err := catalog.Define(schema.Definition{
			Name:       "Post",
			Properties: []schema.PropertyDefinition{{Name: "author", Kind: model.RuleOne, Target: "Author"}},
		})
		require.ErrorContains(t, err, `references unknown type "Author"`)
		require.False(t, catalog.Has("Post"))
	})

	t.Run("duplicate", func(t *testing.T) {
		catalog := newBlogCatalog(t)
		err := catalog.Define(schema.Definition{Name: "Post"})
		require.ErrorContains(t, err, `type "Post" already defined`)

		err = schema.NewCatalog().Define(schema.Definition{Name: "A"}, schema.Definition{Name: "A"})
		require.ErrorContains(t, err, "defined twice")
	})

	t.Run("circular", func(t *testing.T) {
		catalog := schema.NewCatalog()
		defs, err := schema.ParseBytes([]byte(`
types:
  - name: Parent
    properties:
      child: {one: Child}
  - name: Child
    properties:
      parents: [Parent]
`), "cycle.yaml")
		require.NoError(t, err)

		err = catalog.Define(defs...)
		require.True(t, errors.Is(err, model.ErrCircularConfiguration), "got %v", err)
		require.Empty(t, catalog.List())
	})

	t.Run("failed batch registers nothing", func(t *testing.T) {
		reg := model.NewRegistry()
		catalog := schema.NewCatalog(schema.WithRegistry(reg))
		err := catalog.Define(
			schema.Definition{Name: "Ok", Properties: []schema.PropertyDefinition{{Name: "title", Kind: model.RuleScalar, Marker: "String"}}},
			schema.Definition{Name: "B", Properties: []schema.PropertyDefinition{{Name: "c", Kind: model.RuleOne, Target: "C"}}},
			schema.Definition{Name: "C", Properties: []schema.PropertyDefinition{{Name: "b", Kind: model.RuleOne, Target: "B"}}},
		)
		require.True(t, errors.Is(err, model.ErrCircularConfiguration), "got %v", err)
		require.Empty(t, catalog.List())
		require.Empty(t, reg.Types())

		require.NoError(t, catalog.Define(schema.Definition{Name: "Ok"}))
		require.Equal(t, []string{"Ok"}, reg.Types())
	})
}

func TestCatalogTypeOptionsAndExternalTypes(t *testing.T) {
	type money struct {
		Amount any
	}
	catalog := schema.NewCatalog(
		schema.WithTypeOptions("Line", model.WithBeforeFill(hooks.WrapAs("sku"))),
		schema.WithCommonTypeOptions(model.WithBeforeFill(hooks.SanitizeHTML())),
	)
	catalog.MustAdd(model.Func("Money", func(data any) any { return &money{Amount: data} }))
	require.Error(t, catalog.Add(model.Func("Money", func(data any) any { return data })))

	require.NoError(t, catalog.Define(
		schema.Definition{
			Name: "Line",
			Properties: []schema.PropertyDefinition{
				{Name: "sku", Kind: model.RuleScalar, Marker: "String"},
				{Name: "price", Kind: model.RuleOne, Target: "Money"},
			},
		},
		schema.Definition{
			Name:       "Order",
			Properties: []schema.PropertyDefinition{{Name: "lines", Kind: model.RuleMany, Target: "Line"}},
		},
	))

	order, err := catalog.New("Order", map[string]any{"lines": []any{"<b>A-1</b>", map[string]any{"sku": "B-2", "price": 10}}})
	require.NoError(t, err)

	lines, _ := order.List("lines")
	require.Equal(t, 2, lines.Len())
	first := lines.At(0).(*model.Model)
	require.Equal(t, "A-1", first.Value("sku"))
	require.Nil(t, first.Value("price").(*money).Amount)
	second := lines.At(1).(*model.Model)
	require.Equal(t, 10, second.Value("price").(*money).Amount)

	_, err = catalog.New("Money", nil)
	require.ErrorContains(t, err, "not a configured model type")
	_, err = catalog.New("Missing", nil)
	require.ErrorContains(t, err, `type "Missing" not found`)
}

func TestCatalogSharesRegistry(t *testing.T) {
	reg := model.NewRegistry()
	catalog := schema.NewCatalog(schema.WithRegistry(reg))
	require.NoError(t, catalog.Define(schema.Definition{Name: "Shared"}))

	typ, ok := reg.Lookup("Shared")
	require.True(t, ok)
	require.Same(t, catalog.MustGet("Shared"), typ)
}
