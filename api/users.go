package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/service/users"
)

// UserHandler serves the current user's profile. Admin-side user
// management lives in AdminHandler.
type UserHandler struct {
	service users.UserUseCase
}

type changeNameRequest struct {
	Username string `json:"username" binding:"required"`
}

type changeLoginRequest struct {
	Login string `json:"login" binding:"required"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/me", h.me)
	router.PUT("/me/username", h.changeUsername)
	router.PUT("/me/login", h.changeLogin)
}

func (h *UserHandler) me(c *gin.Context) {
	sess := sessionFrom(c)
	user, err := h.service.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"login":    user.Login,
		"role":     user.Role,
	})
}

func (h *UserHandler) changeUsername(c *gin.Context) {
	var req changeNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := sessionFrom(c)
	if err := h.service.ChangeUsername(c.Request.Context(), sess.UserID, req.Username); err != nil {
		if err == domain.ErrConflict {
			c.JSON(http.StatusConflict, gin.H{"error": "username already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "username updated"})
}

func (h *UserHandler) changeLogin(c *gin.Context) {
	var req changeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := sessionFrom(c)
	if err := h.service.ChangeLogin(c.Request.Context(), sess.UserID, req.Login); err != nil {
		if err == domain.ErrConflict {
			c.JSON(http.StatusConflict, gin.H{"error": "login already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update login"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login updated"})
}
