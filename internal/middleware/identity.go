package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// IdentityHeader carries the authenticated username established by the
// upstream gateway. Authentication itself happens before requests reach this
// service; the id is only used for audit attribution.
const IdentityHeader = "X-Username"

// fallbackUserID is used when the gateway header is absent, e.g. for
// operational calls made directly against the service.
const fallbackUserID = "system"

// IdentityMiddleware extracts the acting user from the gateway header and
// stores it in the request context for audit fields.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(IdentityHeader)
		if userID == "" {
			userID = fallbackUserID
		}
		c.Set(string(userIDKey), userID)
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
