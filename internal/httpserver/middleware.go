package httpserver

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader carries the correlation identifier. An inbound value is
// accepted as-is; otherwise one is generated. The id is echoed on the
// response and attached to every log line for the request.
const requestIDHeader = "X-Request-Id"

const requestIDKey = "requestID"

// maxRequestIDLength guards against abusive inbound header values.
const maxRequestIDLength = 128

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestIDFrom returns the correlation id stored by requestIDMiddleware.
func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func loggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			"request_id", requestIDFrom(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
