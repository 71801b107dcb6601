package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (a *API) GetAsset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing asset id"})
		return
	}

	asset, err := a.articles.Gateway.GetAsset(c.Request.Context(), id, forwardedQuery(c))
	if err != nil {
		apiError(c, err, "Failed to fetch asset")
		return
	}
	c.JSON(http.StatusOK, asset)
}

// RedirectAsset sends the client to the asset's file URL.
func (a *API) RedirectAsset(c *gin.Context) {
	asset, err := a.articles.Gateway.GetAsset(c.Request.Context(), c.Param("id"), forwardedQuery(c))
	if err != nil {
		apiError(c, err, "Failed to fetch asset")
		return
	}
	target := asset.Fields.File.URL
	if target == "" {
		c.Status(http.StatusNotFound)
		return
	}
	if strings.HasPrefix(target, "//") {
		target = "https:" + target
	}
	c.Redirect(http.StatusFound, target)
}
