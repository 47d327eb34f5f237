// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the calling user's ID.
	UserIDKey ContextKey = "user_id"

	// UserIDHeader carries the caller identity set by the upstream gateway.
	UserIDHeader = "X-User-ID"
)

// Identity returns a Gin middleware handler that requires a caller identity.
// Authentication happens upstream; this layer only trusts and parses the forwarded id.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: UserIDHeader + " header is required",
			})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid " + UserIDHeader + " header",
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// OptionalIdentity stores the caller identity when present and valid, and never rejects.
func OptionalIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := uuid.Parse(strings.TrimSpace(c.GetHeader(UserIDHeader))); err == nil && userID != uuid.Nil {
			c.Set(string(UserIDKey), userID)
		}
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}
