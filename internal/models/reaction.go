package models

import (
	"time"

	"github.com/google/uuid"
)

// EmojiReaction is unique on (message, user, emoji): a user cannot
// double-react with the same emoji to the same message.
type EmojiReaction struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MessageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_message_user_emoji"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_message_user_emoji"`
	Emoji     string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_message_user_emoji"`
	CreatedAt time.Time

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
