package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/smile-care-api/internal/utils"
	"go.uber.org/zap"
)

const (
	// EmailKey holds the verified email of the caller on the gin context.
	EmailKey = "email"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*utils.Claims, error)
}

// AuthMiddleware rejects requests without a bearer token with 401 and
// requests with an invalid or expired token with 403.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if authHeader == "" || !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			Logger(c).Debug("rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}

		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// AdminChecker resolves whether the user with email holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// AdminOnly must run after AuthMiddleware. It halts the chain with 403 for
// anyone who is not an admin. The role lookup is bounded by timeout.
func AdminOnly(users AdminChecker, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(EmailKey)
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		isAdmin, err := users.IsAdmin(ctx, email)
		cancel()
		if err != nil {
			Logger(c).Error("admin lookup failed", zap.String("email", email), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}
