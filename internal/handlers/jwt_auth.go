package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/auth"
)

// JWTAuthMiddleware guards routes with the bearer tokens issued at login.
type JWTAuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewJWTAuthMiddleware(tokens *auth.TokenManager) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokens: tokens}
}

// AuthRequired rejects requests without a valid bearer token and stores the
// caller's identity on the context.
func (m *JWTAuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("is_anonymous", claims.IsAnonymous)
		c.Set("is_verified", claims.IsVerified)
		c.Next()
	}
}

// RequireVerified runs after AuthRequired and rejects anonymous or
// unverified callers.
func (m *JWTAuthMiddleware) RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_verified") {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Verified account required",
			})
			return
		}
		c.Next()
	}
}

// bearerToken pulls the token from the Authorization header, falling back
// to the token query parameter for websocket upgrades.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
