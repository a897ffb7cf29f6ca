package models

import (
	"time"

	"github.com/google/uuid"
)

// BotUsername is the reserved account that posts room greetings.
const BotUsername = "ChatBot"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string
	Bio          string
	AvatarURL    string
	LastSeenAt   time.Time
	CreatedAt    time.Time
}
