package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// isAdminKey is the key used to store the authenticated user's admin flag.
const isAdminKey = contextKey("isAdmin")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// IsAdminFromContext reports whether the authenticated user carries the
// admin claim.
func IsAdminFromContext(c *gin.Context) bool {
	v := c.Request.Context().Value(isAdminKey)
	isAdmin, ok := v.(bool)
	return ok && isAdmin
}
