package handlers

import (
	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"github.com/gin-gonic/gin"
)

// UserContextKey is where the router's user loader stores the authenticated user.
const UserContextKey = "user"

func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func currentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(UserContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
