package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/rules"
	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	repo   repository.MessageRepository
	access *rules.AccessPolicy
}

type messageRequest struct {
	Content string `json:"content" binding:"required"`
	PilotID *int64 `json:"pilot_id"`
	AgentID *int64 `json:"agent_id"`
}

func NewMessageHandler(repo repository.MessageRepository, access *rules.AccessPolicy) *MessageHandler {
	return &MessageHandler{repo: repo, access: access}
}

func (h *MessageHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.DELETE("/:id", h.remove)
}

func (h *MessageHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.access.AuthorizeMessage(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	msg, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// ListMine returns the exchange the caller takes part in, either side.
func (h *MessageHandler) ListMine(c *gin.Context) {
	messages, err := h.repo.ListForUser(c.Request.Context(), identityFrom(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// create fills the sender side from the caller identity; the payload names
// the other end.
func (h *MessageHandler) create(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := identityFrom(c)
	msg := &domain.Message{
		SentAt:  time.Now(),
		Content: req.Content,
		PilotID: req.PilotID,
		AgentID: req.AgentID,
	}
	if ident.Role == domain.RolePilot {
		msg.PilotID = &ident.ID
		msg.Direction = domain.MessageToAgent
	} else {
		msg.AgentID = &ident.ID
		msg.Direction = domain.MessageToPilot
	}

	if err := h.repo.Create(c.Request.Context(), msg); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) remove(c *gin.Context) {
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
