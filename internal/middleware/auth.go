package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"shelter_backend/internal/auth"
	"shelter_backend/internal/logger"
	"shelter_backend/pkg/apperrors"
)

const (
	userIDKey = "userID"
	roleIDKey = "roleID"
)

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleIDKey, claims.RoleID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the gin context,
// or 0 when the request is anonymous.
func GetUserID(c *gin.Context) uint {
	val, exists := c.Get(userIDKey)
	if !exists {
		return 0
	}
	id, ok := val.(uint)
	if !ok {
		return 0
	}
	return id
}

// GetRoleID returns the authenticated user's role ID, or 0 when unknown.
func GetRoleID(c *gin.Context) uint {
	val, exists := c.Get(roleIDKey)
	if !exists {
		return 0
	}
	id, ok := val.(uint)
	if !ok {
		return 0
	}
	return id
}
