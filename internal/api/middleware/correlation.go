package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CorrelationIDHeader carries the request correlation id over HTTP
	CorrelationIDHeader = "X-Correlation-ID"

	// CorrelationIDKey stores the correlation id in the gin context
	CorrelationIDKey = "correlation_id"
)

// CorrelationID tags every request with a correlation id, minting one when
// the caller did not supply the header. The id is echoed back in the
// response so clients can reference it.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(CorrelationIDHeader, id)
		c.Set(CorrelationIDKey, id)

		c.Next()
	}
}

// GetCorrelationID returns the request's correlation id, or "" when the
// middleware has not run yet.
func GetCorrelationID(c *gin.Context) string {
	id, ok := c.Get(CorrelationIDKey)
	if !ok {
		return ""
	}
	s, _ := id.(string)
	return s
}
