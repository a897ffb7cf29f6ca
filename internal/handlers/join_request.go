package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/handlers/dto"
	"github.com/thereayou/studybud/internal/middleware"
	"github.com/thereayou/studybud/internal/models"
	"github.com/thereayou/studybud/internal/services"
)

type JoinRequestHandler struct {
	membership *services.MembershipService
}

func NewJoinRequestHandler(membership *services.MembershipService) *JoinRequestHandler {
	return &JoinRequestHandler{membership: membership}
}

// RequestJoin submits (or revives) the caller's join request for a private
// room.
func (h *JoinRequestHandler) RequestJoin(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	request, err := h.membership.RequestJoin(userID, roomID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, formatJoinRequest(request))
}

// ListJoinRequests is the host's view of a room's requests. ?pending=true
// narrows to the moderation queue.
func (h *JoinRequestHandler) ListJoinRequests(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	pendingOnly := c.Query("pending") == "true"

	requests, err := h.membership.ListJoinRequests(roomID, userID, pendingOnly)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response := make([]gin.H, len(requests))
	for i := range requests {
		response[i] = formatJoinRequest(&requests[i])
	}

	c.JSON(http.StatusOK, gin.H{"join_requests": response})
}

// LeaveRoom removes the caller from the room's participants.
func (h *JoinRequestHandler) LeaveRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if err := h.membership.LeaveRoom(roomID, userID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ProcessJoinRequest applies the host's approve/reject decision.
func (h *JoinRequestHandler) ProcessJoinRequest(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req dto.ProcessJoinRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.membership.ProcessJoinRequest(requestID, userID, models.JoinRequestStatus(req.Status))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, formatJoinRequest(request))
}
