package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devforum/models"
	"devforum/services"
)

const identityKey = "identity"

// AuthMiddleware проверяет Bearer-токен активной сессии
// и кладет личность пользователя в контекст запроса
func AuthMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required: provide Authorization Bearer token"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		identity, ok := sessions.Authenticate(token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom достает личность пользователя, положенную AuthMiddleware
func IdentityFrom(c *gin.Context) (*models.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := val.(*models.Identity)
	return identity, ok
}
