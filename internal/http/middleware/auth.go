package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autohaus-service/internal/auth"
	"autohaus-service/internal/model"
)

const (
	principalContextKey = "principal"
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"
)

// Auth rejects requests without a valid operator bearer token.
func Auth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawHeader := c.GetHeader(authorizationHeader)
		if rawHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}

		principal, ok := parseBearer(parser, rawHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through untouched, but a request that
// presents a token gets it verified: a bad token is rejected outright rather
// than silently downgraded to the anonymous view.
func OptionalAuth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawHeader := c.GetHeader(authorizationHeader)
		if rawHeader == "" {
			c.Next()
			return
		}

		principal, ok := parseBearer(parser, rawHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func parseBearer(parser *auth.Parser, rawHeader string) (model.Principal, bool) {
	parts := strings.SplitN(rawHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
		return model.Principal{}, false
	}

	claims, err := parser.Parse(parts[1])
	if err != nil {
		return model.Principal{}, false
	}

	return model.Principal{
		AdminID:  claims.AdminID,
		Username: claims.Username,
	}, true
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return model.Principal{}, false
	}

	principal, ok := value.(model.Principal)
	if !ok {
		return model.Principal{}, false
	}

	return principal, true
}

// IsAuthenticated reports whether a verified principal is attached.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := MustPrincipal(c)
	return ok
}
