package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowPaths bypasses rate limiting for requests whose path starts with any prefix.
func AllowPaths(prefixes ...string) AllowFunc {
	return func(c *gin.Context) bool {
		p := c.Request.URL.Path
		for _, pre := range prefixes {
			if strings.HasPrefix(p, pre) {
				return true
			}
		}
		return false
	}
}
