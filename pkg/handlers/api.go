package handlers

import (
	"context"
	"errors"
	"net/http"

	"contentful-blog/pkg/models"
	"contentful-blog/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// API exposes the gateway as read-only JSON endpoints.
type API struct {
	articles *services.Articles
}

func NewAPI(articles *services.Articles) *API {
	return &API{articles: articles}
}

type entryPage struct {
	Page    int            `json:"page"`
	MaxPage int            `json:"maxPage"`
	Total   int            `json:"total"`
	Items   []models.Entry `json:"items"`
}

type entryWithNeighbours struct {
	Entry *models.Entry `json:"entry"`
	Next  *models.Entry `json:"next"`
	Prev  *models.Entry `json:"prev"`
}

func (a *API) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()
	params := services.ParsePageParams(services.ReadParams(c.Request.URL.RawQuery), "")

	entries, err := a.articles.Page(ctx, params.Page)
	if err != nil {
		apiError(c, err, "Failed to fetch entries")
		return
	}
	total, err := a.articles.Total(ctx)
	if err != nil {
		apiError(c, err, "Failed to count entries")
		return
	}

	c.JSON(http.StatusOK, entryPage{
		Page:    params.Page,
		MaxPage: services.MaxPage(total, a.articles.PageSize),
		Total:   total,
		Items:   entries,
	})
}

func (a *API) GetEntry(c *gin.Context) {
	ctx := c.Request.Context()
	entry, err := a.articles.Get(ctx, c.Param("id"))
	if err != nil {
		apiError(c, err, "Failed to fetch entry")
		return
	}
	next, prev, err := a.articles.Adjacent(ctx, entry.Sys.CreatedAt)
	if err != nil {
		apiError(c, err, "Failed to fetch adjacent entries")
		return
	}
	c.JSON(http.StatusOK, entryWithNeighbours{Entry: entry, Next: next, Prev: prev})
}

func (a *API) ListContentTypes(c *gin.Context) {
	types, err := a.articles.Gateway.GetContentTypes(c.Request.Context(), forwardedQuery(c))
	if err != nil {
		apiError(c, err, "Failed to fetch content types")
		return
	}
	c.JSON(http.StatusOK, types)
}

// forwardedQuery passes the request's query parameters through to the gateway.
func forwardedQuery(c *gin.Context) models.Query {
	return models.Query(services.ReadParams(c.Request.URL.RawQuery))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func apiError(c *gin.Context, err error, msg string) {
	status := errorStatus(err)
	log.Error().Err(err).
		Str("path", c.Request.URL.RequestURI()).
		Int("status", status).
		Msg(msg)
	c.JSON(status, gin.H{"error": msg})
}
