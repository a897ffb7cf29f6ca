package database

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/studybud/internal/models"
	"gorm.io/gorm"
)

func (d *Database) GetMessage(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := d.db.Preload("User").First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// SaveMessage stores a message, makes the author a participant of the room
// and bumps the room's recency, all in one transaction. The participant
// append is a no-op for existing participants and for bot messages.
func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}

		if !message.IsBot {
			var user models.User
			if err := tx.First(&user, "id = ?", message.UserID).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Room{ID: message.RoomID}).Association("Participants").Append(&user); err != nil {
				return err
			}
		}

		return tx.Model(&models.Room{}).
			Where("id = ?", message.RoomID).
			Update("updated_at", time.Now()).Error
	})
}

func (d *Database) DeleteMessage(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.EmojiReaction{}, "message_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, "id = ?", id).Error
	})
}

func (d *Database) GetRoomMessages(roomID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Preload("User").
		Find(&messages).Error
	return messages, err
}

// GetRecentMessages is the activity feed: the newest messages across all
// rooms.
func (d *Database) GetRecentMessages(limit int) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Order("created_at DESC").
		Limit(limit).
		Preload("User").
		Preload("Room").
		Find(&messages).Error
	return messages, err
}

// HasBotGreeting reports whether a bot message mentioning username already
// exists in the room.
func (d *Database) HasBotGreeting(roomID uuid.UUID, username string) (bool, error) {
	var count int64
	err := d.db.Model(&models.Message{}).
		Where("room_id = ? AND is_bot = true AND body ILIKE ?", roomID, "%"+escapeLike(username)+"%").
		Count(&count).Error
	return count > 0, err
}

// escapeLike neutralizes LIKE wildcards so the username matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
