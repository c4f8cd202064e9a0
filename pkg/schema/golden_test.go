package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-hydrate/pkg/schema"
	"github.com/goliatone/go-hydrate/pkg/testsupport"
)

func TestCatalogFillMatchesGolden(t *testing.T) {
	catalog := newBlogCatalog(t)

	post, err := catalog.New("Post", testsupport.MustLoadData(t, "testdata/fixtures/post.json"))
	require.NoError(t, err)
	testsupport.AssertModelGolden(t, "testdata/golden/post.json", post)

	// Refilling with the same data keeps the exported tree stable.
	require.NoError(t, post.FillData(testsupport.MustLoadData(t, "testdata/fixtures/post.json")))
	testsupport.AssertModelGolden(t, "testdata/golden/post.json", post)
}

func TestParseFixtureDocument(t *testing.T) {
	defs, err := schema.Parse(testsupport.LoadDocument(t, "testdata/blog/posts.yaml"))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	require.Equal(t, "testdata/blog/posts.yaml", defs[0].Source)
}
