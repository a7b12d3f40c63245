package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated actor's ID.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, falling back to the request context. The boolean reports whether
// an ID was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
		return "", false
	}
	if userIDVal := c.Request.Context().Value(userIDKey); userIDVal != nil {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
	}
	return "", false
}
