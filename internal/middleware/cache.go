package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl lets the browser keep a response for maxAgeSeconds. Used for
// slow-changing lookups such as the prediction picker.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}

// NoStore forbids caching. Dashboard data must reflect the latest import.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
