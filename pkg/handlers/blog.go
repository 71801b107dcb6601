package handlers

import (
	"bytes"
	"net/http"

	"contentful-blog/pkg/services"
	"contentful-blog/pkg/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Blog serves the article page.
type Blog struct {
	articles       *services.Articles
	template       *view.Template
	renderer       *view.ArticleRenderer
	defaultEntryID string
}

func NewBlog(articles *services.Articles, template *view.Template, renderer *view.ArticleRenderer, defaultEntryID string) *Blog {
	return &Blog{
		articles:       articles,
		template:       template,
		renderer:       renderer,
		defaultEntryID: defaultEntryID,
	}
}

// Index runs one page load: list, pagination, selected article, then the
// links to its neighbours. Each fetch waits for the previous one.
func (b *Blog) Index(c *gin.Context) {
	ctx := c.Request.Context()
	params := services.ParsePageParams(services.ReadParams(c.Request.URL.RawQuery), b.defaultEntryID)

	page, err := b.template.NewPage()
	if err != nil {
		b.fail(c, err, "failed to parse host page")
		return
	}

	entries, err := b.articles.Page(ctx, params.Page)
	if err != nil {
		b.fail(c, err, "failed to fetch article list")
		return
	}
	if err := page.Append(view.SlotLists, view.TitleList(entries)); err != nil {
		b.fail(c, err, "failed to render article list")
		return
	}

	maxPage, err := b.articles.MaxPage(ctx)
	if err != nil {
		b.fail(c, err, "failed to count articles")
		return
	}
	if err := page.Append(view.SlotPagination, view.PaginationControl(params.Page, maxPage)); err != nil {
		b.fail(c, err, "failed to render pagination")
		return
	}

	entry, err := b.articles.Get(ctx, params.ID)
	if err != nil {
		b.fail(c, err, "failed to fetch article")
		return
	}
	articleSlot, err := page.Slot(view.SlotArticle)
	if err != nil {
		b.fail(c, err, "failed to render article")
		return
	}
	if err := b.renderer.Render(articleSlot, entry); err != nil {
		b.fail(c, err, "failed to render article")
		return
	}

	next, err := b.articles.Next(ctx, entry.Sys.CreatedAt)
	if err != nil {
		b.fail(c, err, "failed to fetch next article")
		return
	}
	if next != nil {
		if err := page.Append(view.SlotNext, view.AdjacentLink(next)); err != nil {
			b.fail(c, err, "failed to render next link")
			return
		}
	}

	prev, err := b.articles.Prev(ctx, entry.Sys.CreatedAt)
	if err != nil {
		b.fail(c, err, "failed to fetch previous article")
		return
	}
	if prev != nil {
		if err := page.Append(view.SlotPrev, view.AdjacentLink(prev)); err != nil {
			b.fail(c, err, "failed to render previous link")
			return
		}
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		b.fail(c, err, "failed to write page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (b *Blog) fail(c *gin.Context, err error, msg string) {
	status := errorStatus(err)
	log.Error().Err(err).
		Str("path", c.Request.URL.RequestURI()).
		Int("status", status).
		Msg(msg)
	c.String(status, http.StatusText(status))
}
