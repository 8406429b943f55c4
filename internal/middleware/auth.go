package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fieldcheck/internal/domain"
)

const ContextKeyCaller = "caller"

// CallerVerifier turns a bearer token into a caller identity.
type CallerVerifier interface {
	Verify(token string) (domain.Caller, error)
}

// Identify resolves the caller from an optional bearer token. Requests
// without an Authorization header proceed as anonymous; a header that is
// present but not a valid bearer token is rejected. With a nil verifier
// every request is anonymous.
func Identify(verifier CallerVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || verifier == nil {
			c.Set(ContextKeyCaller, domain.Caller{})
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid authorization header"},
			})
			return
		}

		caller, err := verifier.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyCaller, caller)
		c.Next()
	}
}

// GetCaller extracts the caller from the Gin context. It returns an
// anonymous caller when Identify did not run.
func GetCaller(c *gin.Context) domain.Caller {
	val, exists := c.Get(ContextKeyCaller)
	if !exists {
		return domain.Caller{}
	}
	caller, _ := val.(domain.Caller)
	return caller
}
