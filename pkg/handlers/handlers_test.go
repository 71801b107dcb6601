package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"contentful-blog/pkg/models"
	"contentful-blog/pkg/services"
	"contentful-blog/pkg/view"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter serves seven articles e1..e7 (e1 oldest) five per page.
// e3 carries an image and e6 has no body.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	for i := 1; i <= 7; i++ {
		extra := ""
		body := fmt.Sprintf("Body of **entry %d**", i)
		switch i {
		case 3:
			extra = "description: third summary\nimage:\n  id: hero\n  url: //images.ctfassets.net/hero.png\n  description: hero image\n"
		case 6:
			body = ""
		}
		content := fmt.Sprintf("---\ntitle: Entry %d\ncreatedAt: 2020-01-0%dT00:00:00Z\npublishDate: 2020-02-0%d\n%s---\n%s\n", i, i, i, extra, body)
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("e%d.md", i)), []byte(content), 0o644))
	}

	articles := services.NewArticles(services.NewFileGateway(dir, ""), "", 5)
	blog := NewBlog(articles, view.DefaultTemplate(), view.NewArticleRenderer(services.NewMarkdown()), "e7")
	return NewRouter(blog, NewAPI(articles), "")
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestIndexRendersSelectedArticle(t *testing.T) {
	w := get(newTestRouter(t), "/?page=2&id=e3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `<h1 id="title">Entry 3</h1>`)
	assert.Contains(t, body, `<p id="publish-date">2020年02月03日</p>`)
	assert.Contains(t, body, `<div id="description"><p>third summary</p>`)
	assert.Contains(t, body, `<div id="image"><img src="//images.ctfassets.net/hero.png" alt="hero image"/></div>`)
	assert.Contains(t, body, `<div id="body"><p>Body of <strong>entry 3</strong></p>`)

	assert.Contains(t, body, `<div id="next"><a href="/?id=e4">Entry 4</a></div>`)
	assert.Contains(t, body, `<div id="prev"><a href="/?id=e2">Entry 2</a></div>`)

	assert.Contains(t, body, `<section id="lists"><ul><li><a href="/?id=e2">Entry 2 / 2020年02月02日</a></li><li><a href="/?id=e1">Entry 1 / 2020年02月01日</a></li></ul></section>`)
	assert.Contains(t, body, `<nav id="pagination"><ul><li><a href="/?page=1">1</a></li><li>2</li></ul></nav>`)
}

func TestIndexDefaults(t *testing.T) {
	w := get(newTestRouter(t), "/?page=abc")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	// default entry is the newest, so there is nothing after it
	assert.Contains(t, body, `<h1 id="title">Entry 7</h1>`)
	assert.Contains(t, body, `<div id="next"></div>`)
	assert.Contains(t, body, `<div id="prev"><a href="/?id=e6">Entry 6</a></div>`)
	assert.Contains(t, body, `<li><a href="/?id=e7">Entry 7 / 2020年02月07日</a></li>`)
	assert.Contains(t, body, `<nav id="pagination"><ul><li>1</li><li><a href="/?page=2">2</a></li></ul></nav>`)
	// optional slots stay empty
	assert.Contains(t, body, `<div id="description"></div>`)
	assert.Contains(t, body, `<div id="image"></div>`)
}

func TestIndexEarliestArticleHasNoPrev(t *testing.T) {
	w := get(newTestRouter(t), "/?id=e1")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<div id="prev"></div>`)
	assert.Contains(t, body, `<div id="next"><a href="/?id=e2">Entry 2</a></div>`)
}

func TestIndexPastTheLastPage(t *testing.T) {
	w := get(newTestRouter(t), "/?page=9&id=e1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<section id="lists"><ul></ul></section>`)
}

func TestIndexHugePageNumber(t *testing.T) {
	w := get(newTestRouter(t), "/?page=2000000000000000000&id=e1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<section id="lists"><ul></ul></section>`)

	w = get(newTestRouter(t), "/api/entries?page=9223372036854775807")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestIndexErrors(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/?id=missing")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(router, "/?id=e6")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAPIListEntries(t *testing.T) {
	w := get(newTestRouter(t), "/api/entries?page=2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Page    int            `json:"page"`
		MaxPage int            `json:"maxPage"`
		Total   int            `json:"total"`
		Items   []models.Entry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.MaxPage)
	assert.Equal(t, 7, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "e2", resp.Items[0].Sys.ID)
	assert.Equal(t, "e1", resp.Items[1].Sys.ID)
}

func TestAPIGetEntry(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/api/entries/e3")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entry *models.Entry `json:"entry"`
		Next  *models.Entry `json:"next"`
		Prev  *models.Entry `json:"prev"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Entry)
	assert.Equal(t, "Entry 3", resp.Entry.Fields.Title)
	assert.Equal(t, "e4", resp.Next.Sys.ID)
	assert.Equal(t, "e2", resp.Prev.Sys.ID)

	w = get(router, "/api/entries/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch entry"}`, w.Body.String())
}

func TestAPIAssets(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/api/assets/hero")
	require.Equal(t, http.StatusOK, w.Code)
	var asset models.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &asset))
	assert.Equal(t, "hero image", asset.Fields.Description)

	w = get(router, "/api/assets/hero/file")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://images.ctfassets.net/hero.png", w.Header().Get("Location"))

	w = get(router, "/api/assets/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIContentTypes(t *testing.T) {
	w := get(newTestRouter(t), "/api/content-types")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ContentTypeCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, services.DefaultFileContentType, resp.Items[0].Sys.ID)
}

func TestHealthz(t *testing.T) {
	w := get(newTestRouter(t), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
