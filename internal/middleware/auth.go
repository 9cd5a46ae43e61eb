package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taxoapp/taxo/internal/auth"
)

const (
	// UserIDKey is the context key for the authenticated user's numeric id
	UserIDKey = "user_id"
	// UsernameKey is the context key for the authenticated user's username
	UsernameKey = "username"
)

// Auth creates a middleware that requires a valid Bearer session token.
// On success the authenticated identity is stored in the request context;
// handlers read it with GetUserID. Requests without a valid token are
// rejected with 401 before reaching any handler.
func Auth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(c, "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := issuer.Verify(parts[1])
		if err != nil {
			if log := GetLogger(c); log != nil {
				log.Warn("Rejected invalid session token", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
			}
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)

		c.Next()
	}
}

// unauthorized writes a 401 response in the standard error envelope and
// aborts the request.
func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":       "UNAUTHORIZED",
			"message":    message,
			"request_id": GetRequestID(c),
		},
	})
	c.Abort()
}

// GetUserID retrieves the authenticated user id from the Gin context.
// Returns 0, false if no identity is present.
func GetUserID(c *gin.Context) (int64, bool) {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}
