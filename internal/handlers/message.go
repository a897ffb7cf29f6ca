package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/handlers/dto"
	"github.com/thereayou/studybud/internal/middleware"
	"github.com/thereayou/studybud/internal/services"
)

type MessageHandler struct {
	messages  *services.MessageService
	reactions *services.ReactionService
}

func NewMessageHandler(messages *services.MessageService, reactions *services.ReactionService) *MessageHandler {
	return &MessageHandler{messages: messages, reactions: reactions}
}

// PostMessage creates a message in the room; posting joins the caller to
// the room's participants.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Post(userID, roomID, req.Body, req.FileURL)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         message.ID,
		"room_id":    message.RoomID,
		"body":       message.Body,
		"file_url":   message.FileURL,
		"is_image":   message.IsImage,
		"created_at": message.CreatedAt,
	})
}

// DeleteMessage removes the caller's own message.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.messages.Delete(messageID, userID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

// ToggleReaction adds the emoji reaction if absent, removes it if present.
func (h *MessageHandler) ToggleReaction(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.reactions.Toggle(messageID, userID, req.Emoji)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	action := "removed"
	status := http.StatusOK
	if added {
		action = "added"
		status = http.StatusCreated
	}

	c.JSON(status, gin.H{"emoji": req.Emoji, "action": action})
}

// ListReactions returns the per-emoji aggregate for a message.
func (h *MessageHandler) ListReactions(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	groups, err := h.reactions.GroupByEmoji(messageID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reactions": groups})
}
