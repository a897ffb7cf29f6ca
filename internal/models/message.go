package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Body      string    `gorm:"not null"`
	FileURL   string
	IsImage   bool `gorm:"default:false"`
	IsBot     bool `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	User      User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Room      Room            `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Reactions []EmojiReaction `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}
