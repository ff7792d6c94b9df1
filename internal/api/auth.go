package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/settlement-elections/internal/models"
	"github.com/saxenaaman628/settlement-elections/internal/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func LoginHandler(secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		for _, u := range models.DummyUsers {
			if u.Username == req.Username && u.Password == req.Password {
				token, err := utils.GenerateJWTToken(secret, ttl, u.ID, u.Username, u.Role)
				if err != nil {
					log.Error("failed to generate token", "user", u.ID, "error", err)
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"token": token})
				return
			}
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	}
}
