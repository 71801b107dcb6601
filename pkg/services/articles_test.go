package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"contentful-blog/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGateway forwards to another gateway and keeps every query it saw.
type recordingGateway struct {
	Gateway
	queries []models.Query
	err     error
}

func (g *recordingGateway) GetEntries(ctx context.Context, query models.Query) ([]models.Entry, error) {
	g.queries = append(g.queries, query.Clone())
	if g.err != nil {
		return nil, g.err
	}
	return g.Gateway.GetEntries(ctx, query)
}

func (g *recordingGateway) CountEntries(ctx context.Context, query models.Query) (int, error) {
	g.queries = append(g.queries, query.Clone())
	if g.err != nil {
		return 0, g.err
	}
	return g.Gateway.CountEntries(ctx, query)
}

// newTestArticles writes n articles created one day apart, e1 being the oldest.
func newTestArticles(t *testing.T, n, pageSize int) (*Articles, *recordingGateway) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{}
	for i := 1; i <= n; i++ {
		created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i-1)
		files[fmt.Sprintf("e%d.md", i)] = fmt.Sprintf("---\ntitle: Entry %d\ncreatedAt: %s\n---\nbody %d\n", i, created.Format(time.RFC3339), i)
	}
	writeContent(t, dir, files)

	gw := &recordingGateway{Gateway: NewFileGateway(dir, "article")}
	return NewArticles(gw, "article", pageSize), gw
}

func TestArticlesPage(t *testing.T) {
	articles, gw := newTestArticles(t, 12, 5)
	ctx := context.Background()

	page, err := articles.Page(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"e12", "e11", "e10", "e9", "e8"}, ids(page))
	assert.Equal(t, models.Query{
		"content_type": "article",
		"order":        "-sys.createdAt",
		"skip":         "0",
		"limit":        "5",
	}, gw.queries[0])

	page, err = articles.Page(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e1"}, ids(page))
	assert.Equal(t, "10", gw.queries[1]["skip"])

	page, err = articles.Page(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestArticlesPageFarPastTheEnd(t *testing.T) {
	articles, gw := newTestArticles(t, 3, 5)

	page, err := articles.Page(context.Background(), 2000000000000000000)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Empty(t, gw.queries)
}

func TestArticlesMaxPage(t *testing.T) {
	for _, tt := range []struct{ n, want int }{{12, 3}, {10, 2}, {0, 0}} {
		articles, _ := newTestArticles(t, tt.n, 5)
		maxPage, err := articles.MaxPage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tt.want, maxPage, "n=%d", tt.n)
	}
}

func TestArticlesAdjacent(t *testing.T) {
	articles, gw := newTestArticles(t, 5, 5)
	ctx := context.Background()

	middle, err := articles.Get(ctx, "e3")
	require.NoError(t, err)

	next, prev, err := articles.Adjacent(ctx, middle.Sys.CreatedAt)
	require.NoError(t, err)
	require.NotNil(t, next)
	require.NotNil(t, prev)
	assert.Equal(t, "e4", next.Sys.ID)
	assert.Equal(t, "e2", prev.Sys.ID)

	require.Len(t, gw.queries, 2)
	assert.Equal(t, models.Query{
		"content_type":      "article",
		"sys.createdAt[gt]": "2020-01-03T00:00:00Z",
		"limit":             "1",
		"order":             "sys.createdAt",
	}, gw.queries[0])
	assert.Equal(t, models.Query{
		"content_type":      "article",
		"sys.createdAt[lt]": "2020-01-03T00:00:00Z",
		"limit":             "1",
		"order":             "-sys.createdAt",
	}, gw.queries[1])
}

func TestArticlesAdjacentAtTheEdges(t *testing.T) {
	articles, _ := newTestArticles(t, 5, 5)
	ctx := context.Background()

	latest, err := articles.Get(ctx, "e5")
	require.NoError(t, err)
	next, prev, err := articles.Adjacent(ctx, latest.Sys.CreatedAt)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.NotNil(t, prev)
	assert.Equal(t, "e4", prev.Sys.ID)

	earliest, err := articles.Get(ctx, "e1")
	require.NoError(t, err)
	next, prev, err = articles.Adjacent(ctx, earliest.Sys.CreatedAt)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "e2", next.Sys.ID)
	assert.Nil(t, prev)
}

func TestArticlesPropagatesErrors(t *testing.T) {
	articles, gw := newTestArticles(t, 2, 5)
	gw.err = errors.New("upstream down")
	ctx := context.Background()

	_, err := articles.Page(ctx, 1)
	assert.EqualError(t, err, "upstream down")

	_, err = articles.MaxPage(ctx)
	assert.EqualError(t, err, "upstream down")

	_, _, err = articles.Adjacent(ctx, time.Now())
	assert.EqualError(t, err, "upstream down")
}
