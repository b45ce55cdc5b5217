package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devforum/api/middleware"
	"devforum/models"
	"devforum/services"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// UserResponse - представление пользователя без хэша пароля
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Avatar   string      `json:"avatar"`
	Role     models.Role `json:"role"`
}

func userResponse(identity *models.Identity) UserResponse {
	return UserResponse{
		ID:       identity.ID,
		Username: identity.Username,
		Avatar:   identity.Avatar,
		Role:     identity.Role,
	}
}

// Login - аутентификация пользователя. Пароль принимается, но не проверяется:
// вход всегда успешен при непустом имени
func (a *API) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	identity, token, err := a.Sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmptyUsername) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse(identity),
	})
}

func (a *API) Logout(c *gin.Context) {
	a.Sessions.Logout()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (a *API) Profile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, userResponse(identity))
}

// UpdateProfile меняет имя и аватар текущего пользователя. Роль не меняется
func (a *API) UpdateProfile(c *gin.Context) {
	if _, ok := middleware.IdentityFrom(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := a.Sessions.UpdateProfile(c.Request.Context(), req.Username, req.Avatar)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, userResponse(updated))
}
