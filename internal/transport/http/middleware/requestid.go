package middleware

import (
	"github.com/ErlanBelekov/authapi/internal/requestid"
	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// RequestID injects a request ID into the context and response header.
// A well-formed incoming X-Request-ID is kept; anything else is replaced
// with a fresh UUID so client input never lands in logs unchecked.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if !requestid.Valid(id) {
			id = requestid.New()
		}

		ctx := requestid.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
