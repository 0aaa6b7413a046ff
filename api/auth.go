package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/aerodrome/internal/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *auth.Authenticator
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Role        string `json:"role"`
}

func NewAuthHandler(authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{auth: authenticator}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Role:        string(user.Role),
	})
}
