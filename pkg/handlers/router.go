package handlers

import (
	"os"
	"time"

	"contentful-blog/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// NewRouter wires the page, the JSON API and static files.
func NewRouter(blog *Blog, api *API, staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())

	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			r.Static("/static", staticDir) // Serve static assets (css/js/images)
		}
	}

	r.GET("/", blog.Index)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "ok")
	})
	r.GET("/version", func(c *gin.Context) {
		c.String(200, version.GetBuildInfo())
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/entries", api.ListEntries)
		apiGroup.GET("/entries/:id", api.GetEntry)
		apiGroup.GET("/assets/:id", api.GetAsset)
		apiGroup.GET("/assets/:id/file", api.RedirectAsset)
		apiGroup.GET("/content-types", api.ListContentTypes)
	}

	return r
}

// RequestLogger logs each request once it has been served.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.RequestURI()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request served")
	}
}
