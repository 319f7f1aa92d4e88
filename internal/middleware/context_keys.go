package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	// loggerCtxKey stores the request-scoped logger in the standard context.
	loggerCtxKey = contextKey("logger")

	// userIDKey stores the authenticated user's ID.
	userIDKey = contextKey("userID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
