package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/database"
	"github.com/thereayou/studybud/internal/handlers/dto"
	"github.com/thereayou/studybud/internal/middleware"
	"github.com/thereayou/studybud/internal/models"
	"github.com/thereayou/studybud/internal/services"
)

type RoomHandler struct {
	db         *database.Database
	membership *services.MembershipService
	messages   *services.MessageService
	polls      *services.PollService
}

func NewRoomHandler(db *database.Database, membership *services.MembershipService, messages *services.MessageService, polls *services.PollService) *RoomHandler {
	return &RoomHandler{db: db, membership: membership, messages: messages, polls: polls}
}

// ListRooms lists rooms matching the q filter against topic name, room
// name and description. Open to anonymous callers.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.db.SearchRooms(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	response := make([]gin.H, len(rooms))
	for i := range rooms {
		response[i] = formatRoomResponse(&rooms[i])
	}

	c.JSON(http.StatusOK, gin.H{"rooms": response, "room_count": len(rooms)})
}

// CreateRoom creates a room hosted by the caller. The topic is resolved by
// name, get-or-create.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := h.db.GetOrCreateTopic(req.Topic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve topic"})
		return
	}

	welcome := req.WelcomeMessage
	if welcome == "" {
		welcome = models.DefaultWelcomeMessage
	}

	room := &models.Room{
		HostID:         &userID,
		TopicID:        &topic.ID,
		Name:           req.Name,
		Description:    req.Description,
		IsPrivate:      req.IsPrivate,
		WelcomeMessage: welcome,
	}

	if err := h.db.CreateRoom(room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	full, err := h.db.GetRoom(room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}

	c.JSON(http.StatusCreated, formatRoomResponse(full))
}

// GetRoom returns the room detail view: messages, participants, polls, the
// caller's join request and, for the host, the pending-request count.
// Entering as a new participant triggers the bot greeting.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.db.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	userID, authenticated := middleware.CurrentUserID(c)

	var user *models.User
	if authenticated {
		user, err = h.db.GetUser(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
	}

	if !h.membership.CanAccess(user, room) {
		// The caller sees that the room exists plus their own request
		// state, nothing else.
		summary := gin.H{
			"id":          room.ID,
			"name":        room.Name,
			"description": room.Description,
			"is_private":  room.IsPrivate,
		}
		if room.Topic != nil {
			summary["topic"] = gin.H{"id": room.Topic.ID, "name": room.Topic.Name}
		}
		if authenticated {
			if request, err := h.membership.GetOwnRequest(roomID, userID); err == nil {
				summary["join_request"] = formatJoinRequest(request)
			}
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	response := formatRoomResponse(room)

	if authenticated {
		// Greet a newly joined participant once.
		if _, err := h.messages.Greet(roomID, userID); err != nil {
			writeServiceError(c, err)
			return
		}

		if request, err := h.membership.GetOwnRequest(roomID, userID); err == nil {
			response["join_request"] = formatJoinRequest(request)
		}

		if room.IsHost(userID) {
			count, err := h.membership.PendingCount(roomID, userID)
			if err != nil {
				writeServiceError(c, err)
				return
			}
			response["pending_requests_count"] = count
		}
	}

	messages, err := h.db.GetRoomMessages(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	response["messages"] = formatMessages(messages)

	polls, err := h.db.GetRoomPolls(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load polls"})
		return
	}
	response["polls"] = formatPolls(polls)

	c.JSON(http.StatusOK, response)
}

// UpdateRoom lets the host edit the room. The topic is again resolved by
// name, get-or-create.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.db.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	if !room.IsHost(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the host can update this room"})
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		room.Name = req.Name
	}
	if req.Topic != "" {
		topic, err := h.db.GetOrCreateTopic(req.Topic)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve topic"})
			return
		}
		room.TopicID = &topic.ID
		room.Topic = topic
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.IsPrivate != nil {
		room.IsPrivate = *req.IsPrivate
	}
	if req.WelcomeMessage != "" {
		room.WelcomeMessage = req.WelcomeMessage
	}

	if err := h.db.UpdateRoom(room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		return
	}

	c.JSON(http.StatusOK, formatRoomResponse(room))
}

// DeleteRoom removes the room and everything it owns.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.db.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	if !room.IsHost(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the host can delete this room"})
		return
	}

	if err := h.db.DeleteRoom(roomID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}

// ListTopics lists topics matching the q filter.
func (h *RoomHandler) ListTopics(c *gin.Context) {
	topics, err := h.db.SearchTopics(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list topics"})
		return
	}

	response := make([]gin.H, len(topics))
	for i, topic := range topics {
		response[i] = gin.H{"id": topic.ID, "name": topic.Name}
	}

	c.JSON(http.StatusOK, gin.H{"topics": response})
}

// Activity is the recent-messages feed.
func (h *RoomHandler) Activity(c *gin.Context) {
	messages, err := h.messages.Recent(5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": formatMessages(messages)})
}

func formatRoomResponse(room *models.Room) gin.H {
	participants := make([]gin.H, len(room.Participants))
	for i, p := range room.Participants {
		participants[i] = gin.H{
			"id":         p.ID,
			"username":   p.Username,
			"avatar_url": p.AvatarURL,
		}
	}

	response := gin.H{
		"id":              room.ID,
		"name":            room.Name,
		"description":     room.Description,
		"is_private":      room.IsPrivate,
		"welcome_message": room.WelcomeMessage,
		"participants":    participants,
		"created_at":      room.CreatedAt,
		"updated_at":      room.UpdatedAt,
	}
	if room.Host != nil {
		response["host"] = gin.H{
			"id":         room.Host.ID,
			"username":   room.Host.Username,
			"avatar_url": room.Host.AvatarURL,
		}
	}
	if room.Topic != nil {
		response["topic"] = gin.H{
			"id":   room.Topic.ID,
			"name": room.Topic.Name,
		}
	}
	return response
}

func formatMessages(messages []models.Message) []gin.H {
	response := make([]gin.H, len(messages))
	for i, m := range messages {
		response[i] = gin.H{
			"id":         m.ID,
			"room_id":    m.RoomID,
			"body":       m.Body,
			"file_url":   m.FileURL,
			"is_image":   m.IsImage,
			"is_bot":     m.IsBot,
			"created_at": m.CreatedAt,
			"user": gin.H{
				"id":         m.User.ID,
				"username":   m.User.Username,
				"avatar_url": m.User.AvatarURL,
			},
		}
	}
	return response
}

func formatPolls(polls []models.Poll) []gin.H {
	response := make([]gin.H, len(polls))
	for i, p := range polls {
		response[i] = formatPoll(&p)
	}
	return response
}

func formatPoll(poll *models.Poll) gin.H {
	options := make([]gin.H, len(poll.Options))
	for i, o := range poll.Options {
		options[i] = gin.H{
			"id":          o.ID,
			"option_text": o.OptionText,
			"vote_count":  o.VoteCount(),
		}
	}

	return gin.H{
		"id":         poll.ID,
		"room_id":    poll.RoomID,
		"question":   poll.Question,
		"created_by": poll.CreatedBy.Username,
		"created_at": poll.CreatedAt,
		"options":    options,
	}
}

func formatJoinRequest(request *models.RoomJoinRequest) gin.H {
	response := gin.H{
		"id":         request.ID,
		"room_id":    request.RoomID,
		"user_id":    request.UserID,
		"status":     request.Status,
		"created_at": request.CreatedAt,
	}
	if request.User.ID != uuid.Nil {
		response["user"] = gin.H{
			"id":       request.User.ID,
			"username": request.User.Username,
		}
	}
	return response
}
