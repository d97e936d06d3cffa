package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const CacheNoCache = 0

// CacheRouter sets a default cache-control header on every response.
// Previews change on template upload and downloads are token-addressed,
// so the router default is no-cache; cacheable end-points override it.
type CacheRouter struct {
	CacheTime int // seconds; CacheNoCache disables caching
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime == CacheNoCache {
			c.Header("cache-control", "no-cache")
		} else {
			c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
		}
		c.Next()
	}
}
