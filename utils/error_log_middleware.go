package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

type debugResponseWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w debugResponseWriter) Write(b []byte) (int, error) {
	if status := w.gc.Writer.Status(); status >= 400 {
		log.Printf("Request failed: %s %s: %d, body: %s", w.gc.Request.Method, w.gc.Request.URL.Path, status, string(b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs the bodies of failed responses in debug mode.
// Must be installed before gzip, which swaps the writer out.
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = &debugResponseWriter{gc: c, ResponseWriter: c.Writer}
	c.Next()
}
