package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the calling user's ID in the request context.
const userIDKey = contextKey("userID")

// Identity copies the authenticated user ID supplied by the upstream auth
// collaborator (X-User-ID header) into the request context. Authentication
// itself happens outside this service; the ledger only needs an explicit
// caller identity for audit fields and settlement attribution.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetUserIDFromContext retrieves the calling user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
