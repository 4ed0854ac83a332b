package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/response"
)

// AuthMiddleware checks the bearer access token and stores the user id under "userID".
func AuthMiddleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "NO_AUTH_HEADER", "Authorization required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokens.ParseAccess(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
