// server/internal/api/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"asset-verse-api-server/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Directory resolves an email to the role stored in the user directory. The
// role guard checks the directory instead of trusting the token's role claim,
// so a role change takes effect without waiting for the token to expire.
type Directory interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Authenticate validates the JWT and puts the principal's identity into the
// request context.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims := &auth.JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return auth.JwtSecret, nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)

		c.Next()
	}
}

// Authorize is a middleware factory that allows the request only when the
// directory reports one of the allowed roles for the authenticated email.
func Authorize(directory Directory, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")
		if email == "" {
			// Authenticate must run before Authorize.
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User email not found in context"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userRole, err := directory.RoleByEmail(ctx, email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is not registered"})
			return
		}
		c.Set("user_role", userRole)

		for _, role := range allowedRoles {
			if role == userRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}
