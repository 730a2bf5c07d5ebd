package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const principalKey = "principal_id"

// Auth resolves the bearer token into the request principal. Every handler
// behind this middleware can rely on Principal(c) being non-empty.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is missing")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid token")
			return
		}

		if claims.Subject == "" {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		c.Set(principalKey, claims.Subject)
		c.Next()
	}
}

// Principal returns the authenticated user id for the request.
func Principal(c *gin.Context) string {
	return c.GetString(principalKey)
}

// SetPrincipal injects a principal directly, bypassing token parsing.
// Intended for handler tests.
func SetPrincipal(c *gin.Context, id string) {
	c.Set(principalKey, id)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   msg,
	})
}
