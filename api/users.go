package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/aerodrome/internal/auth"
	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	repo repository.UserRepository
}

type createUserRequest struct {
	Role      string  `json:"role" binding:"required,oneof=pilot agent admin"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email" binding:"required,email"`
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required,min=8"`
	License   *string `json:"license"`
	Medical   *string `json:"medical"`
}

type userResponse struct {
	ID        int64   `json:"id"`
	Role      string  `json:"role"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	License   *string `json:"license,omitempty"`
	Medical   *string `json:"medical,omitempty"`
}

func NewUserHandler(repo repository.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.DELETE("/:id", h.remove)
}

func (h *UserHandler) list(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	role := domain.Role(c.DefaultQuery("role", string(domain.RolePilot)))
	if role != domain.RolePilot && !requireAdmin(c) {
		return
	}
	users, err := h.repo.ListByRole(c.Request.Context(), role)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ident := identityFrom(c)
	if !ident.Role.Staff() && ident.ID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to view this user"})
		return
	}
	user, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// create lets staff register pilots; staff accounts themselves are created by
// administrators only.
func (h *UserHandler) create(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := domain.Role(req.Role)
	if role != domain.RolePilot && !requireAdmin(c) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user := &domain.User{
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		Username:     req.Username,
		License:      req.License,
		Medical:      req.Medical,
		PasswordHash: hash,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) remove(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Role:      string(u.Role),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Email:     u.Email,
		Username:  u.Username,
		License:   u.License,
		Medical:   u.Medical,
	}
}
