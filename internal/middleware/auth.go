package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/settlement-elections/internal/models"
	"github.com/saxenaaman628/settlement-elections/internal/utils"
)

// JWTAuthMiddleware requires a valid Bearer token whose subject is a
// registered user and stores userID, username and role in the gin context.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := utils.ParseJWTToken(secret, strings.TrimSpace(raw))
		if err != nil {
			log.Debug("token rejected", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user := models.User{ID: claims.Subject, Username: claims.Username, Role: claims.Role}
		if !user.HasRegisteredRole() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if _, ok := models.FindUser(user.ID); !ok {
			log.Debug("token subject is not a registered user", "user", user.ID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Set("role", user.Role)
		c.Next()
	}
}
