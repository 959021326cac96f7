package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFound renders the custom not-found page. Used for unknown routes
// and for missing groups, posts and profiles, so every 404 looks the
// same.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": "page not found",
		"path":  c.Request.URL.Path,
	})
}
