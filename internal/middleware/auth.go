package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "authUserID"

// parseToken validates a bearer token and returns the user id claim
func parseToken(tokenString, secret string) (int64, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// OptionalAuth extracts the acting user from a bearer token when one is
// present and valid. Anonymous requests pass through untouched; search
// just skips the per-user wishlist/completed annotation for them.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if id, ok := parseToken(token, secret); ok {
				c.Set(userIDKey, id)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Authentication required",
			})
			return
		}
		id, ok := parseToken(token, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Invalid or expired token",
			})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID returns the authenticated user id, nil for anonymous requests
func UserID(c *gin.Context) *int64 {
	v, ok := c.Get(userIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}
