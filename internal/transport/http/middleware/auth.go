package middleware

import (
	"net/http"
	"strings"

	"github.com/ErlanBelekov/authapi/internal/identity"
	"github.com/ErlanBelekov/authapi/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	errAccessDenied = "Access denied"
	errInvalidToken = "Invalid token"
)

// TokenVerifier is satisfied by *token.Service.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// Auth gates a route on a Bearer token. A missing token aborts with 401,
// a token that fails verification aborts with 400. On success the user ID
// is stored under "userID" in the gin context and in the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAccessDenied})
			return
		}

		userID, err := verifier.Verify(rawToken)
		if err != nil {
			metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errInvalidToken})
			return
		}

		metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
		c.Request = c.Request.WithContext(identity.WithUserID(c.Request.Context(), userID))
		c.Set("userID", userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, rawToken, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	rawToken = strings.TrimSpace(rawToken)
	return rawToken, rawToken != ""
}
