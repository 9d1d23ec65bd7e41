package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderName is the request header carrying the shared API secret.
const HeaderName = "X-API-KEY"

// APIKeyMiddleware rejects any request whose X-API-KEY header does not match
// the configured secret. Every route except the health and readiness checks
// sits behind this middleware.
func APIKeyMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderName))
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Could not validate credentials",
			})
			return
		}
		c.Next()
	}
}
