package services

import (
	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
)

// Store interfaces consumed by the engines, implemented by
// internal/database. Multi-step mutations (CastVote, ToggleReaction,
// ApproveJoinRequest, SaveMessage) are atomic on the store side.

type MembershipStore interface {
	GetRoom(id uuid.UUID) (*models.Room, error)
	RemoveParticipant(roomID, userID uuid.UUID) error
	GetJoinRequest(roomID, userID uuid.UUID) (*models.RoomJoinRequest, error)
	GetJoinRequestByID(id uuid.UUID) (*models.RoomJoinRequest, error)
	CreateJoinRequest(request *models.RoomJoinRequest) error
	UpdateJoinRequestStatus(id uuid.UUID, status models.JoinRequestStatus) error
	ApproveJoinRequest(request *models.RoomJoinRequest) error
	ListJoinRequests(roomID uuid.UUID, pendingOnly bool) ([]models.RoomJoinRequest, error)
	CountPendingJoinRequests(roomID uuid.UUID) (int64, error)
}

type PollStore interface {
	GetRoom(id uuid.UUID) (*models.Room, error)
	GetPoll(id uuid.UUID) (*models.Poll, error)
	GetPollOption(id uuid.UUID) (*models.PollOption, error)
	GetRoomPolls(roomID uuid.UUID) ([]models.Poll, error)
	CreatePoll(poll *models.Poll) error
	CastVote(userID, optionID uuid.UUID) error
}

type ReactionStore interface {
	GetMessage(id uuid.UUID) (*models.Message, error)
	ToggleReaction(messageID, userID uuid.UUID, emoji string) (bool, error)
	GetMessageReactions(messageID uuid.UUID) ([]models.EmojiReaction, error)
	CountReactions(messageID uuid.UUID, emoji string) (int64, error)
}

type MessageStore interface {
	GetRoom(id uuid.UUID) (*models.Room, error)
	GetUser(id uuid.UUID) (*models.User, error)
	GetOrCreateBotUser() (*models.User, error)
	GetMessage(id uuid.UUID) (*models.Message, error)
	SaveMessage(message *models.Message) error
	DeleteMessage(id uuid.UUID) error
	GetRoomMessages(roomID uuid.UUID) ([]models.Message, error)
	GetRecentMessages(limit int) ([]models.Message, error)
	HasBotGreeting(roomID uuid.UUID, username string) (bool, error)
}

type QuizStore interface {
	GetRoom(id uuid.UUID) (*models.Room, error)
}
