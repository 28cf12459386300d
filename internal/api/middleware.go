package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestLoggingMiddleware tags every request with an ID and logs its outcome.
// An incoming X-Request-ID header is reused.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Printf("%s %s [%s] status=%d latency=%s",
			c.Request.Method, c.Request.URL.Path, id, c.Writer.Status(), time.Since(start))
	}
}

// RequestID returns the ID assigned by RequestLoggingMiddleware, if any.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
