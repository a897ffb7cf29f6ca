package services

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

// MessageService handles access-gated posting, the bot greeting, and
// author-only deletion.
type MessageService struct {
	store MessageStore
}

func NewMessageService(store MessageStore) *MessageService {
	return &MessageService{store: store}
}

// Post creates a message in the room. Posting requires read access and
// makes the author a participant, so anyone who posts in a public room
// joins it.
func (s *MessageService) Post(userID, roomID uuid.UUID, body, fileURL string) (*models.Message, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if room.IsPrivate && !room.IsHost(userID) && !room.HasParticipant(userID) {
		return nil, ErrNotAuthorized
	}

	message := &models.Message{
		RoomID:  roomID,
		UserID:  userID,
		Body:    body,
		FileURL: fileURL,
		IsImage: isImageFile(fileURL),
	}
	if err := s.store.SaveMessage(message); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	return message, nil
}

// Greet posts the room's welcome message for a newly joined participant,
// authored by the ChatBot account. A participant is greeted at most once
// per room.
func (s *MessageService) Greet(roomID, userID uuid.UUID) (*models.Message, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if !room.HasParticipant(userID) {
		return nil, nil
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	greeted, err := s.store.HasBotGreeting(roomID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("check greeting: %w", err)
	}
	if greeted {
		return nil, nil
	}

	bot, err := s.store.GetOrCreateBotUser()
	if err != nil {
		return nil, fmt.Errorf("get bot user: %w", err)
	}

	template := room.WelcomeMessage
	if template == "" {
		template = models.DefaultWelcomeMessage
	}
	greeting := strings.ReplaceAll(template, "{user}", user.Username)
	greeting = strings.ReplaceAll(greeting, "{room}", room.Name)

	message := &models.Message{
		RoomID: roomID,
		UserID: bot.ID,
		Body:   greeting,
		IsBot:  true,
	}
	if err := s.store.SaveMessage(message); err != nil {
		return nil, fmt.Errorf("save greeting: %w", err)
	}

	return message, nil
}

// Delete removes a message. Only its author may delete it.
func (s *MessageService) Delete(messageID, actingUserID uuid.UUID) error {
	message, err := s.store.GetMessage(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get message: %w", err)
	}

	if message.UserID != actingUserID {
		return ErrNotAuthorized
	}

	if err := s.store.DeleteMessage(messageID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// RoomMessages lists a room's messages newest first, gated like any other
// room read.
func (s *MessageService) RoomMessages(roomID, userID uuid.UUID) ([]models.Message, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if room.IsPrivate && !room.IsHost(userID) && !room.HasParticipant(userID) {
		return nil, ErrNotAuthorized
	}

	return s.store.GetRoomMessages(roomID)
}

// Recent is the activity feed.
func (s *MessageService) Recent(limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.store.GetRecentMessages(limit)
}

func isImageFile(fileURL string) bool {
	if fileURL == "" {
		return false
	}
	mimeType := mime.TypeByExtension(filepath.Ext(fileURL))
	return strings.HasPrefix(mimeType, "image/")
}
